package cmd

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/VoxDroid/cookme/internal/logging"
)

// lockedBuffer is a bytes.Buffer safe for the server goroutine to log into.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeShutsDownOnCancel(t *testing.T) {
	var logs lockedBuffer
	logging.SetLogger(logging.NewTestLogger(&logs))
	defer logging.Init(logging.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	if err := serve(ctx, srv); err != nil {
		t.Fatalf("serve: %v", err)
	}

	out := logs.String()
	if !strings.Contains(out, `"message":"shutting down"`) || !strings.Contains(out, `"component":"api"`) {
		t.Fatalf("expected component-tagged shutdown log, got: %s", out)
	}
}

func TestServeReportsListenError(t *testing.T) {
	logging.SetLogger(logging.NewTestLogger(&lockedBuffer{}))
	defer logging.Init(logging.DefaultConfig())

	srv := &http.Server{Addr: "256.0.0.1:bad", Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}
	if err := serve(context.Background(), srv); err == nil || !strings.Contains(err.Error(), "listen") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
