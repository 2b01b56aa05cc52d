package log

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitWithFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "moonorbit.log")

	cfg := DefaultFileConfig(logFile)
	cfg.Compress = false
	if err := InitWithFile(false, cfg); err != nil {
		t.Fatalf("InitWithFile: %v", err)
	}
	Infof("frame interval %dms", 16)
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "frame interval 16ms") {
		t.Errorf("log file missing message, got: %s", data)
	}
}

func TestGetSugaredLoggerFallback(t *testing.T) {
	log = nil
	baseLogger = nil
	if GetSugaredLogger() == nil {
		t.Fatal("GetSugaredLogger returned nil before Init")
	}
	if GetZapLogger() == nil {
		t.Fatal("GetZapLogger returned nil before Init")
	}
}

func TestHTTPLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core).Sugar()

	h := HTTPLogger(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/boom" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/api/frame", "/boom"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, expected 2", len(entries))
	}
	if entries[0].Level != zapcore.DebugLevel {
		t.Errorf("200 response logged at %v, expected debug", entries[0].Level)
	}
	if entries[1].Level != zapcore.WarnLevel {
		t.Errorf("500 response logged at %v, expected warn", entries[1].Level)
	}
	if got := entries[0].ContextMap()["path"]; got != "/api/frame" {
		t.Errorf("logged path = %v, expected /api/frame", got)
	}
}
