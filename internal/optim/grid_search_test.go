package optim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cyclosim/internal/config"
	"github.com/san-kum/cyclosim/internal/experiment"
)

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, Linspace(1, 5, 5))
	assert.Equal(t, []float64{2}, Linspace(2, 9, 1))
	assert.Nil(t, Linspace(0, 1, 0))
}

func TestParseRange(t *testing.T) {
	vals, err := ParseRange("0:1:3")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, vals)

	vals, err = ParseRange("1, 2.5,4")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 4}, vals)

	for _, bad := range []string{"1:2", "a:2:3", "1:2:0", "1,x"} {
		_, err := ParseRange(bad)
		assert.Error(t, err, bad)
	}
}

func TestPointsOrder(t *testing.T) {
	g := NewGridSearch([]string{"voltage", "mass"}, [][]float64{{1, 2}, {3, 4, 5}})
	pts := g.Points()

	require.Len(t, pts, 6)
	assert.Equal(t, map[string]float64{"voltage": 1, "mass": 3}, pts[0])
	assert.Equal(t, map[string]float64{"voltage": 1, "mass": 4}, pts[1])
	assert.Equal(t, map[string]float64{"voltage": 2, "mass": 5}, pts[5])
}

func TestSearchFindsLargestGain(t *testing.T) {
	base := config.DefaultConfig()
	base.Duration = 5

	g := NewGridSearch([]string{"voltage"}, [][]float64{{0.5, 1, 2, 3}})
	g.SetLimit(2)

	best, all, err := g.Search(context.Background(), base, experiment.NewRegistry(), "energy_gain", Maximize)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, 3.0, best.Params["voltage"])
	assert.Greater(t, best.Value, 0.0)

	worst, _, err := g.Search(context.Background(), base, experiment.NewRegistry(), "energy_gain", Minimize)
	require.NoError(t, err)
	assert.Equal(t, 0.5, worst.Params["voltage"])

	assert.Equal(t, 5.0, base.Duration, "base config must not be modified")
	assert.Equal(t, config.DefaultVoltage, base.Field.Voltage)
}

func TestSearchSkipsInvalidCells(t *testing.T) {
	base := config.DefaultConfig()
	base.Duration = 2

	g := NewGridSearch([]string{"mass"}, [][]float64{{0, 1}})
	best, all, err := g.Search(context.Background(), base, experiment.NewRegistry(), "final_energy", Maximize)
	require.NoError(t, err)
	assert.Error(t, all[0].Err)
	assert.Equal(t, 1.0, best.Params["mass"])
}

func TestSearchErrors(t *testing.T) {
	base := config.DefaultConfig()
	reg := experiment.NewRegistry()

	_, _, err := NewGridSearch([]string{"voltage"}, nil).Search(context.Background(), base, reg, "energy_gain", Maximize)
	assert.Error(t, err)

	_, _, err = NewGridSearch([]string{"voltage"}, [][]float64{{1}}).Search(context.Background(), base, reg, "bogus", Maximize)
	assert.Error(t, err)

	_, _, err = NewGridSearch([]string{"mass"}, [][]float64{{0, -1}}).Search(context.Background(), base, reg, "final_energy", Maximize)
	assert.Error(t, err)
}
