package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantType any
		wantErr  bool
	}{
		{
			name:     "null engine",
			cfg:      Config{Type: "null"},
			wantType: &NullEngine{},
		},
		{
			name:     "beep engine",
			cfg:      Config{Type: "beep", Settings: map[string]any{"buffer_ms": 50}},
			wantType: &BeepEngine{},
		},
		{
			name:     "empty type defaults to beep",
			cfg:      Config{},
			wantType: &BeepEngine{},
		},
		{
			name:    "unknown type",
			cfg:     Config{Type: "gramophone"},
			wantErr: true,
		},
		{
			name:    "malformed settings",
			cfg:     Config{Type: "beep", Settings: map[string]any{"buffer_ms": "soon"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, eng)
			assert.NoError(t, eng.Close())
		})
	}
}
