package common

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	assert.NoError(t, SetupLogger(slog.LevelDebug, "json"))
	assert.NoError(t, SetupLogger(slog.LevelInfo, "console"))
	assert.Error(t, SetupLogger(slog.LevelInfo, "xml"))
}

func TestUserError(t *testing.T) {
	cause := errors.New("disk on fire")

	err := NewUserError("could not read sales data", cause)
	assert.Equal(t, "could not read sales data: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)

	var ue *UserError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "could not read sales data", ue.UserMessage)

	assert.Equal(t, "plain", NewUserError("plain", nil).Error())
}

func TestFieldAttrsSorted(t *testing.T) {
	attrs := fieldAttrs(Fields{"b": 2, "a": 1, "c": 3})
	require.Len(t, attrs, 3)
	assert.Equal(t, "a", attrs[0].Key)
	assert.Equal(t, "b", attrs[1].Key)
	assert.Equal(t, "c", attrs[2].Key)
}
