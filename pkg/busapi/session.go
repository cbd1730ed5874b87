package busapi

// SessionType is the device type code sent with every session request.
const SessionType = 7

// DeviceSession identifies a client to the API and is required on every
// location and journey call.
type DeviceSession struct {
	SessionID string `json:"session-id"`
	DeviceID  string `json:"device-id"`
}

// Valid reports whether both identifiers are present.
func (s DeviceSession) Valid() bool {
	return s.SessionID != "" && s.DeviceID != ""
}

// SessionRequest is the body of client/getsession.
type SessionRequest struct {
	Type        int          `json:"type"`
	Connection  Connection   `json:"connection"`
	Browser     Browser      `json:"browser"`
	Application *Application `json:"application,omitempty"`
}

// Connection describes the end user's network endpoint.
type Connection struct {
	IPAddress string `json:"ip-address"`
	Port      string `json:"port"`
}

// Browser describes the end user's browser.
type Browser struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Application identifies this façade to the API.
type Application struct {
	Version     string `json:"version"`
	EquipmentID string `json:"equipment-id"`
}

// SessionData is the payload of a successful session response.
type SessionData struct {
	SessionID string `json:"session-id"`
	DeviceID  string `json:"device-id"`
}

// DeviceSession converts the payload into the session used by later calls.
func (d *SessionData) DeviceSession() DeviceSession {
	if d == nil {
		return DeviceSession{}
	}
	return DeviceSession{SessionID: d.SessionID, DeviceID: d.DeviceID}
}
