package binder

import "errors"

var (
	// ErrBinderNotApplicable is returned when a binder does not handle the
	// request, e.g. a form binder on a request without a form body. Callers
	// skip such binders.
	ErrBinderNotApplicable = errors.New("binder.not_applicable")

	ErrUnsupportedMediaType = errors.New("binder.unsupported_media_type")
	ErrInvalidForm          = errors.New("binder.invalid_form")
	ErrInvalidQuery         = errors.New("binder.invalid_query")
	ErrInvalidTarget        = errors.New("binder.invalid_target")
)
