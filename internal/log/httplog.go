package log

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

// HTTPLogEntry represents an HTTP request/response log entry
type HTTPLogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	Size       int       `json:"size"`
	RemoteAddr string    `json:"remote_addr"`
	UserAgent  string    `json:"user_agent"`
}

// HTTPLogger wraps h so every request is logged through logger at debug
// level, or at warn level for 5xx responses
func HTTPLogger(logger *zap.SugaredLogger, h http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, h, func(_ io.Writer, p handlers.LogFormatterParams) {
		entry := HTTPLogEntry{
			Timestamp:  p.TimeStamp,
			Method:     p.Request.Method,
			Path:       p.URL.Path,
			Status:     p.StatusCode,
			Size:       p.Size,
			RemoteAddr: p.Request.RemoteAddr,
			UserAgent:  p.Request.UserAgent(),
		}
		logHTTPRequest(logger, entry)
	})
}

func logHTTPRequest(logger *zap.SugaredLogger, e HTTPLogEntry) {
	kv := []interface{}{
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"size", e.Size,
		"remote_addr", e.RemoteAddr,
		"user_agent", e.UserAgent,
	}
	if e.Status >= http.StatusInternalServerError {
		logger.Warnw("http request", kv...)
		return
	}
	logger.Debugw("http request", kv...)
}
