package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	prod, err := New("production")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))

	dev, err := New("development")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestMustPanicsOnError(t *testing.T) {
	assert.Panics(t, func() { Must(nil, assert.AnError) })
	l := zap.NewNop()
	assert.Same(t, l, Must(l, nil))
}

func TestNamedNilBase(t *testing.T) {
	assert.NotNil(t, Named(nil, "svc"))
}
