package binder

import "net/http"

// Query binds URL query parameters to struct fields tagged `query:"name"`.
// Untagged fields bind to their lowercased name; `query:"-"` skips a field.
// Multi-value parameters fill slices, either repeated or comma separated.
//
//	type JourneyQuery struct {
//		OriginID int    `query:"origin_id"`
//		Date     string `query:"date"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
