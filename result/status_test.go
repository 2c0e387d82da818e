package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusIsValid(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		valid  bool
	}{
		{"ok", StatusOK, true},
		{"warning", StatusWarning, true},
		{"unknown", StatusUnknown, true},
		{"empty", Status(""), false},
		{"arbitrary", Status("critical"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.IsValid())
		})
	}
}

func TestStatusRank(t *testing.T) {
	assert.Greater(t, StatusWarning.Rank(), StatusUnknown.Rank())
	assert.Greater(t, StatusUnknown.Rank(), StatusOK.Rank())
	assert.Equal(t, -1, Status("bogus").Rank())
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("warning")
	require.NoError(t, err)
	assert.Equal(t, StatusWarning, s)

	_, err = ParseStatus("fatal")
	assert.Error(t, err)
}
