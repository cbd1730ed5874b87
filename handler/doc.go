// Package handler turns typed request handlers into http.HandlerFunc values.
//
// A handler receives a Context and a request struct populated by binders,
// and returns a Response:
//
//	type JourneyQuery struct {
//		OriginID int `query:"origin_id" validate:"required,gt=0"`
//	}
//
//	func journeys(ctx handler.Context, req JourneyQuery) handler.Response {
//		journeys, err := svc.Find(ctx, req.OriginID)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(journeys)
//	}
//
//	r.Get("/journeys", handler.Wrap(journeys,
//		handler.WithBinders[handler.Context, JourneyQuery](binder.Query(), binder.Validate()),
//		handler.WithErrorHandler[handler.Context, JourneyQuery](handler.NewErrorHandler(log)),
//	))
//
// Every JSON body uses the JSONResponse envelope: data, meta and error.
// HTTPError values pick the status and error code; binder.FieldErrors
// produce 422 responses with per-field details. Any other error renders as
// a 500 without exposing its text.
package handler
