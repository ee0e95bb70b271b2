package sshui

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"docexplorer/internal/catalog"
)

func TestNew_Validates(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{HostKeyPath: "k"}); err == nil {
		t.Fatalf("expected error for missing addr")
	}
	if _, err := New(Config{Addr: "127.0.0.1:0"}); err == nil {
		t.Fatalf("expected error for missing host key")
	}
}

func TestNew_GeneratesHostKeyAndSessionModels(t *testing.T) {
	t.Parallel()

	keyPath := filepath.Join(t.TempDir(), "ssh_host_ed25519")
	s, err := New(Config{
		Addr:        "127.0.0.1:0",
		HostKeyPath: keyPath,
		Catalog:     catalog.Default(),
		Source:      "built-in",
		Logger:      log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := os.Stat(keyPath); err != nil {
		t.Fatalf("expected host key at %s: %v", keyPath, err)
	}

	a, b := s.newSessionModel(), s.newSessionModel()
	if a == nil || b == nil {
		t.Fatalf("expected session models")
	}
	if a.View() == "" {
		t.Fatalf("expected a rendered view")
	}
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	s, err := New(Config{
		Addr:        "127.0.0.1:0",
		HostKeyPath: filepath.Join(t.TempDir(), "key"),
		Logger:      log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("ListenAndServe: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("server did not stop")
	}
}
