package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phanxgames/balloons"
	"github.com/phanxgames/balloons/config"
	"github.com/phanxgames/balloons/store"
)

type harness struct {
	mem    *store.Memory
	stdout bytes.Buffer
	stderr bytes.Buffer
	env    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("BALLOONS_STORE", config.StoreMemory)
	t.Setenv("BALLOONS_STRATEGY", "")
	t.Setenv("BALLOONS_FIELD_FILE", "")
	return &harness{
		mem: store.NewMemory(nil),
		env: filepath.Join(t.TempDir(), "none.env"),
	}
}

func (h *harness) run(args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	open := func(context.Context, *config.Config, *zap.Logger) (store.Store, func() error, error) {
		return h.mem, func() error { return nil }, nil
	}
	app := newApp(&h.stdout, &h.stderr, open)
	return app.Run(append([]string{"balloons", "--env", h.env}, args...))
}

func TestSendAndList(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("send", "--color", "#00ff00", "hello", "up", "there"))
	assert.Contains(t, h.stdout.String(), "sent ")
	require.NoError(t, h.run("send", "second message"))

	require.NoError(t, h.run("list"))
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "second message")
	assert.Contains(t, lines[1], "hello up there")
	assert.Contains(t, lines[1], "#00FF00")
}

func TestSendInvalidListsProblems(t *testing.T) {
	h := newHarness(t)

	err := h.run("send", "--text-size", "3", "--color", "red", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, balloons.ErrInvalidDraft)
	assert.Contains(t, h.stderr.String(), "text size")
	assert.Contains(t, h.stderr.String(), `color "RED"`)
	assert.Equal(t, 0, h.mem.Len())
}

func TestSendRequiresMessage(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("send"))
}

func TestSendShade(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("send", "--shade", "0.5", "dim"))

	items, err := h.mem.List(context.Background(), store.Page{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "#800000", items[0].Color)
}

func TestListJSONPage(t *testing.T) {
	h := newHarness(t)
	for _, msg := range []string{"a", "b", "c"} {
		require.NoError(t, h.run("send", msg))
	}

	require.NoError(t, h.run("list", "--json", "--limit", "1", "--offset", "1"))
	var items []balloons.Item
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "b", items[0].Message)
}

func TestLayout(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("layout", "--count", "6", "--seed", "9"))
	first := h.stdout.String()
	assert.Len(t, strings.Split(strings.TrimSpace(first), "\n"), 6)

	require.NoError(t, h.run("layout", "--count", "6", "--seed", "9"))
	assert.Equal(t, first, h.stdout.String(), "same seed should give the same layout")
}

func TestLayoutJSONFallback(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("layout", "--count", "200", "--seed", "1", "--json"))
	var out struct {
		Points   []struct{ X, Y, Z float64 } `json:"points"`
		Fallback int                         `json:"fallback"`
	}
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &out))
	assert.Len(t, out.Points, 200)
	assert.Greater(t, out.Fallback, 0)
}

func TestLayoutNegativeCount(t *testing.T) {
	h := newHarness(t)
	assert.Error(t, h.run("layout", "--count", "-1"))
}

func TestConfigErrorsSurface(t *testing.T) {
	h := newHarness(t)
	t.Setenv("BALLOONS_STORE", "carrier-pigeon")
	err := h.run("list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}
