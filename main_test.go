package main

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PollockBoard/internal/config"
	feed "PollockBoard/internal/net"
	"PollockBoard/internal/paint"
	"PollockBoard/internal/state"
)

func parse(t *testing.T, args ...string) (*cobra.Command, options) {
	t.Helper()
	var opts options
	cmd := &cobra.Command{Use: "pollockboard"}
	opts.bind(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, opts
}

func TestLoadConfigDefaults(t *testing.T) {
	cmd, opts := parse(t)

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 3\n[canvas]\nwidth = 500\nheight = 400\n"), 0o644))

	cmd, opts := parse(t, "--config", path, "--width", "640", "--feed", "--feed-addr", "127.0.0.1:9999")

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), cfg.Seed)
	assert.Equal(t, 640, cfg.Canvas.Width)
	assert.Equal(t, 400, cfg.Canvas.Height)
	assert.True(t, cfg.Feed.Enabled)
	assert.Equal(t, "127.0.0.1:9999", cfg.Feed.Addr)
}

func TestLoadConfigRejectsBadFlags(t *testing.T) {
	cmd, opts := parse(t, "--height=-5")

	_, err := loadConfig(cmd, opts)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestSendCommand(t *testing.T) {
	got := make(chan string, 1)
	srv := feed.NewServer(func(_, seq string) int {
		got <- seq
		return len(seq)
	}, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	root := newRootCmd()
	root.SetArgs([]string{"send", "sg", "--to", strings.TrimPrefix(ts.URL, "http://")})
	root.SetOut(io.Discard)
	require.NoError(t, root.ExecuteContext(context.Background()))

	select {
	case seq := <-got:
		assert.Equal(t, "sg", seq)
	case <-time.After(time.Second):
		t.Fatal("sequence never reached the board")
	}
}

func TestSendNeedsSequence(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"send"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	assert.Error(t, root.ExecuteContext(context.Background()))
}

func TestLogPainted(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	logPainted(logger)(state.Invocation{
		Seq:    3,
		Source: state.SourceRemote,
		Effect: paint.EffectDrip,
		Origin: paint.Pt(12.7, 30),
	})

	out := buf.String()
	for _, want := range []string{"painted", "seq=3", "source=remote", "effect=drip", "x=12", "y=30"} {
		assert.Contains(t, out, want)
	}

	buf.Reset()
	logger.SetLevel(log.InfoLevel)
	logPainted(logger)(state.Invocation{Effect: paint.EffectSplash})
	assert.Empty(t, buf.String())
}
