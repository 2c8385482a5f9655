package logger

import (
	"log/slog"
	"strconv"
	"time"
)

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error logs err under "error". Nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	var as []slog.Attr
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

// Elapsed logs the time since start.
func Elapsed(start time.Time) slog.Attr { return slog.Duration("elapsed", time.Since(start)) }

// RequestID logs id under "request_id". Empty yields an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// HistoryID logs a history record id. Empty yields an empty Attr.
func HistoryID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("history_id", id)
}

func Method(method string) slog.Attr { return slog.String("method", method) }
func Path(path string) slog.Attr     { return slog.String("path", path) }
func StatusCode(code int) slog.Attr  { return slog.Int("status_code", code) }
func ClientIP(ip string) slog.Attr   { return slog.String("client_ip", ip) }
func UserAgent(ua string) slog.Attr  { return slog.String("user_agent", ua) }
func BytesOut(n int64) slog.Attr     { return slog.Int64("bytes_out", n) }

func Component(name string) slog.Attr { return slog.String("component", name) }
func Event(name string) slog.Attr     { return slog.String("event", name) }

// Algorithm logs a JWT alg value. Empty yields an empty Attr.
func Algorithm(alg string) slog.Attr {
	if alg == "" {
		return slog.Attr{}
	}
	return slog.String("alg", alg)
}

// TokenSize logs the token length instead of the token, which may carry
// credentials.
func TokenSize(token string) slog.Attr { return slog.Int("token_len", len(token)) }

// Count logs an integer under key.
func Count(key string, n int) slog.Attr { return slog.Int(key, n) }

// Key logs value under key. Nil yields an empty Attr.
func Key(key string, value any) slog.Attr {
	if value == nil {
		return slog.Attr{}
	}
	return slog.Any(key, value)
}
