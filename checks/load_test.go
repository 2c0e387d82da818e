package checks

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/load"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostmedic/hostmedic/result"
)

func newLoadWith(cores int, load1 float64) *Load {
	c := NewLoad(DefaultLoadFactor)
	c.counts = func(context.Context, bool) (int, error) { return cores, nil }
	c.avg = func(context.Context) (*load.AvgStat, error) {
		return &load.AvgStat{Load1: load1, Load5: 0.4, Load15: 0.2}, nil
	}
	return c
}

func TestLoad_Classification(t *testing.T) {
	tests := []struct {
		name     string
		cores    int
		load1    float64
		expected result.Status
	}{
		{"single core over threshold", 1, 0.9, result.StatusWarning},
		{"single core under threshold", 1, 0.7, result.StatusOK},
		{"four cores over computed threshold", 4, 3.5, result.StatusWarning},
		{"four cores exactly at threshold", 4, 3.2, result.StatusOK},
		{"idle host", 8, 0.1, result.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newLoadWith(tt.cores, tt.load1).Run(context.Background())
			assert.Equal(t, tt.expected, res.Status)
		})
	}
}

func TestLoad_WarningNamesTheBreach(t *testing.T) {
	res := newLoadWith(4, 3.5).Run(context.Background())
	require.Equal(t, result.StatusWarning, res.Status)
	require.Len(t, res.Details, 1)
	assert.Contains(t, res.Details[0], "3.50")
	assert.Contains(t, res.Details[0], "3.20")
}

func TestLoad_CoreCountUnavailable(t *testing.T) {
	c := NewLoad(DefaultLoadFactor)
	c.counts = func(context.Context, bool) (int, error) { return 0, errors.New("cpuinfo unreadable") }

	res := c.Run(context.Background())
	assert.Equal(t, result.StatusUnknown, res.Status)
}

func TestLoad_AveragesUnavailable(t *testing.T) {
	c := NewLoad(DefaultLoadFactor)
	c.counts = func(context.Context, bool) (int, error) { return 4, nil }
	c.avg = func(context.Context) (*load.AvgStat, error) { return nil, errors.New("loadavg unreadable") }

	res := c.Run(context.Background())
	assert.Equal(t, result.StatusUnknown, res.Status)
}
