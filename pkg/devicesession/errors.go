package devicesession

import "errors"

var (
	// ErrSessionUnavailable indicates no device session could be obtained.
	// The upstream cause is joined to it.
	ErrSessionUnavailable = errors.New("devicesession.unavailable")

	// ErrNoSession indicates the client has no stored device session.
	ErrNoSession = errors.New("devicesession.not_found")

	// ErrMalformedSession indicates stored data could not be decoded or lacks an id.
	ErrMalformedSession = errors.New("devicesession.malformed")

	ErrNilDependency = errors.New("devicesession.nil_dependency")
)
