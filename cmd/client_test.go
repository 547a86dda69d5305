package cmd

import (
	"context"
	"runtime"
	"strings"
	"testing"
)

func TestNewGmailClientNoTokenNonInteractive(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("cache dir is not controlled by XDG_CACHE_HOME on this platform")
	}
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	// Under go test stdin is a pipe, so a missing token must surface the
	// auth guidance instead of starting the interactive flow.
	if isTerminal() {
		t.Skip("stdin is unexpectedly a terminal")
	}

	_, err := newGmailClient(context.Background(), "default")
	if err == nil {
		t.Fatal("newGmailClient() should fail without a cached token")
	}
	if !strings.Contains(err.Error(), "mailsift auth") {
		t.Errorf("error should point at the auth command, got: %v", err)
	}
}
