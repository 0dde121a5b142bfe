package main

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestServeReportsListenFailure(t *testing.T) {
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	errc := serve(&http.Server{Addr: "no-port-here"}, stop, zap.NewNop())

	select {
	case err := <-errc:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("listen failure was not reported")
	}
	assert.Eventually(t, func() bool { return ctx.Err() != nil }, time.Second, 10*time.Millisecond, "failure cancels the monitor")
}

func TestServeCleanShutdownIsNotAnError(t *testing.T) {
	_, stop := context.WithCancel(context.Background())
	defer stop()

	srv := &http.Server{Addr: "127.0.0.1:0", ReadHeaderTimeout: time.Second}
	errc := serve(srv, stop, zap.NewNop())

	assert.Eventually(t, func() bool {
		return srv.Shutdown(context.Background()) == nil
	}, 5*time.Second, 10*time.Millisecond)
	assert.Never(t, func() bool { return len(errc) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
}
