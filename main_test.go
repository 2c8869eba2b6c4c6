package main

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type stubServer struct {
	err    error
	called bool
}

func (s *stubServer) Shutdown(ctx context.Context) error {
	s.called = true
	return s.err
}

func TestShutdownOnDone_LogsFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := &stubServer{err: errors.New("context deadline exceeded")}
	shutdownOnDone(ctx, srv, logger)

	if !srv.called {
		t.Fatal("Expected Shutdown to be called")
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel || entry.Data[logrus.ErrorKey] != srv.err {
		t.Errorf("Expected logged shutdown error, got %+v", entry)
	}
}

func TestShutdownOnDone_Clean(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	shutdownOnDone(ctx, &stubServer{}, logger)
	if len(hook.AllEntries()) != 0 {
		t.Errorf("Expected no log entries, got %d", len(hook.AllEntries()))
	}
}
