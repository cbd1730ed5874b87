// Package binder fills request structs from HTTP requests.
//
// Binders share the signature func(*http.Request, any) error and are applied
// in order by handler.Wrap:
//
//	handler.Wrap(h, handler.WithBinders[handler.Context, JourneyQuery](
//		binder.Query(),
//		binder.Form(),
//		binder.Validate(),
//	))
//
// A binder that does not apply to a request returns ErrBinderNotApplicable
// and is skipped. Validate reports rule failures as FieldErrors keyed by the
// query or form name of each field.
package binder
