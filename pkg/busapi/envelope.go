package busapi

// StatusSuccess is the only envelope status treated as a successful call.
const StatusSuccess = "Success"

// Envelope is the uniform wrapper of every API response.
type Envelope[T any] struct {
	Status       string `json:"status"`
	Data         T      `json:"data"`
	Message      string `json:"message,omitempty"`
	UserMessage  string `json:"user-message,omitempty"`
	APIRequestID string `json:"api-request-id,omitempty"`
	Controller   string `json:"controller,omitempty"`
}

// OK reports whether the envelope carries a successful result.
func (e *Envelope[T]) OK() bool {
	return e != nil && e.Status == StatusSuccess
}

// Err returns nil for successful envelopes and a *RejectedError otherwise.
// A rejected envelope is a normal result, not a transport failure.
func (e *Envelope[T]) Err() error {
	if e.OK() {
		return nil
	}
	if e == nil {
		return &RejectedError{}
	}
	return &RejectedError{
		Status:       e.Status,
		Message:      e.Message,
		UserMessage:  e.UserMessage,
		APIRequestID: e.APIRequestID,
	}
}

type (
	// SessionResponse is returned by client/getsession.
	SessionResponse = Envelope[*SessionData]
	// LocationResponse is returned by location/getbuslocations.
	LocationResponse = Envelope[[]Location]
	// JourneyResponse is returned by journey/getbusjourneys.
	JourneyResponse = Envelope[[]Journey]
)
