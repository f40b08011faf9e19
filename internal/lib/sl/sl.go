// Package sl holds small helpers for log/slog attributes.
package sl

import "log/slog"

// Err wraps err as an "error" attribute:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
