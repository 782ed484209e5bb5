package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		verbose   bool
		wantDebug bool
	}{
		{name: "dev-quiet", mode: "dev"},
		{name: "dev-verbose", mode: "dev", verbose: true, wantDebug: true},
		{name: "prod-quiet", mode: "production"},
		{name: "prod-verbose", mode: "PROD", verbose: true, wantDebug: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.mode, tt.verbose)
			require.NoError(t, err)
			defer Sync(l)
			assert.Equal(t, tt.wantDebug, l.Core().Enabled(zap.DebugLevel))
			assert.True(t, l.Core().Enabled(zap.InfoLevel))
		})
	}
}

func TestSync_Nil(t *testing.T) {
	assert.NotPanics(t, func() { Sync(nil) })
}
