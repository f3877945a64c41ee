package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBarChart_ReplacesChartOnSameCanvas(t *testing.T) {
	r := NewRenderer()
	series := Series{Labels: []string{"SP", "RJ"}, Values: []float64{3, 1}}

	first := r.CreateBarChart("ufChart", series, Config{Label: "Licitações"})
	second := r.CreateBarChart("ufChart", series, Config{Label: "Licitações"})

	assert.Equal(t, 1, r.Len())
	assert.True(t, first.Destroyed())
	assert.False(t, second.Destroyed())

	got, ok := r.Get("ufChart")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestCreateBarChart_IndependentCanvases(t *testing.T) {
	r := NewRenderer()
	r.CreateBarChart("ufChart", Series{}, Config{})
	r.CreateBarChart("modalidadesChart", Series{}, Config{})
	assert.Equal(t, 2, r.Len())

	r.Destroy("ufChart")
	assert.Equal(t, 1, r.Len())
	_, ok := r.Get("ufChart")
	assert.False(t, ok)
}

func TestCreateBarChart_CyclesPalette(t *testing.T) {
	r := NewRenderer()
	cfg := Config{
		Label:      "Quantidade",
		XAxisTitle: "UF",
		YAxisTitle: "Licitações",
		Colors:     Colors{Background: []string{"a", "b"}, Border: []string{"x"}},
	}
	chart := r.CreateBarChart("c", Series{Labels: []string{"1", "2", "3"}, Values: []float64{1, 2, 3}}, cfg)

	require.Len(t, chart.Spec.Data.Datasets, 1)
	ds := chart.Spec.Data.Datasets[0]
	assert.Equal(t, []string{"a", "b", "a"}, ds.BackgroundColor)
	assert.Equal(t, []string{"x", "x", "x"}, ds.BorderColor)
	assert.Equal(t, "bar", chart.Spec.Type)
	assert.True(t, chart.Spec.Options.Scales.Y.BeginAtZero)
	assert.Equal(t, "UF", chart.Spec.Options.Scales.X.Title.Text)
}
