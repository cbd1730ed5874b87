package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// SessionID records the upstream session id under "session_id".
func SessionID(id string) slog.Attr {
	return optionalString("session_id", id)
}

// DeviceID records the upstream device id under "device_id".
func DeviceID(id string) slog.Attr {
	return optionalString("device_id", id)
}

// CacheKey records a cache key under "cache_key".
func CacheKey(key string) slog.Attr {
	return optionalString("cache_key", key)
}

// Endpoint records an upstream endpoint path under "endpoint".
func Endpoint(path string) slog.Attr {
	return optionalString("endpoint", path)
}

// APIRequestID records the upstream request id under "api_request_id".
func APIRequestID(id string) slog.Attr {
	return optionalString("api_request_id", id)
}

// Status records an upstream envelope status under "status".
func Status(status string) slog.Attr {
	return optionalString("status", status)
}

func optionalString(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
