package utils

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPosthogClientWrapper_DisabledWithoutKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := InitializePosthogClient("", "", logger)

	assert.False(t, w.IsInitialized())
	assert.NotPanics(t, func() {
		w.Track("user-1", "signed_up", map[string]any{"provider": "local"})
		w.Close()
	})

	var nilWrapper *PosthogClientWrapper
	assert.False(t, nilWrapper.IsInitialized())
	assert.NotPanics(t, func() { nilWrapper.Track("u", "e", nil) })
}
