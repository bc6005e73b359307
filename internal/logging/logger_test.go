package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		debugLogs bool
	}{
		{name: "production", debug: false, debugLogs: false},
		{name: "development", debug: true, debugLogs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.debug)
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Equal(t, tt.debugLogs, logger.Core().Enabled(zap.DebugLevel))
			assert.True(t, logger.Core().Enabled(zap.InfoLevel))
		})
	}
}
