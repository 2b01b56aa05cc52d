package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chrissnell/moonorbit/pkg/config"
	"go.uber.org/zap"
)

type stubProvider struct {
	cfg *config.ConfigData
	err error
}

func (s stubProvider) LoadConfig() (*config.ConfigData, error)          { return s.cfg, s.err }
func (s stubProvider) GetControllers() ([]config.ControllerData, error) { return s.cfg.Controllers, s.err }
func (s stubProvider) IsReadOnly() bool                                 { return true }
func (s stubProvider) Close() error                                     { return nil }

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- New(stubProvider{cfg: config.Default()}, zap.NewNop().Sugar()).Run(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunConfigError(t *testing.T) {
	boom := errors.New("boom")
	err := New(stubProvider{err: boom}, zap.NewNop().Sugar()).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("Run = %v, expected %v", err, boom)
	}
}

func TestRunBadController(t *testing.T) {
	cfg := config.Default()
	cfg.Controllers = []config.ControllerData{{Type: "carrier-pigeon"}}
	if err := New(stubProvider{cfg: cfg}, zap.NewNop().Sugar()).Run(context.Background()); err == nil {
		t.Error("expected error for unknown controller type")
	}
}
