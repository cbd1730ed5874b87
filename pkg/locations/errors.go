package locations

import "errors"

var (
	ErrNilDependency = errors.New("locations.nil_dependency")
	ErrEmptyResponse = errors.New("locations.empty_response")
)
