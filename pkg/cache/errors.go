package cache

import "errors"

var (
	ErrNilFactory  = errors.New("cache.nil_factory")
	ErrEncodeValue = errors.New("cache.encode_value")
	ErrBackend     = errors.New("cache.backend")
)
