package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewWithFormat(t *testing.T) {
	_, err := NewWithFormat("json", slog.LevelInfo)
	assert.NoError(t, err)
	_, err = NewWithFormat("", slog.LevelInfo)
	assert.NoError(t, err)
	_, err = NewWithFormat("xml", slog.LevelInfo)
	assert.Error(t, err)
}

func TestReplaceAttrRenamesError(t *testing.T) {
	a := options(slog.LevelInfo).ReplaceAttr(nil, slog.String("error", "boom"))
	assert.Equal(t, "err", a.Key)
}
