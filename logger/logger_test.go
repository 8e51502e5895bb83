package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnsLogger(t *testing.T) {
	l := New("debug", false)
	require.NotNil(t, l)
	require.NotNil(t, l.Info())
	require.NotNil(t, l.Error())
	require.NotNil(t, l.Debug())
	require.NotNil(t, l.Warn())
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	l := New("not-a-level", false)
	require.NotNil(t, l)
	assert.Equal(t, zerolog.InfoLevel, l.zlog.GetLevel())
}

func TestWithFields(t *testing.T) {
	l := New("disabled", true)
	child := l.WithFields(map[string]any{"provider": "postgres"})
	require.NotNil(t, child)
	assert.NotSame(t, Logger(l), child)
}

func TestEventChaining(t *testing.T) {
	l := New("disabled", false)
	ev := l.Debug().Str("sql", "SELECT 1").Int("args", 0).Int64("rows", 1).Bool("tx", false)
	require.NotNil(t, ev)
	ev.Msg("query executed")
}

func TestFromZerolog(t *testing.T) {
	zl := zerolog.Nop()
	l := FromZerolog(zl)
	require.NotNil(t, l)
	l.Info().Msg("noop")
}
