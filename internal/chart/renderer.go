// Package chart строит столбчатые диаграммы в формате Chart.js.
package chart

import (
	"sync"
)

// Series представляет подписи и значения столбцов.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Colors - палитра заливки и границ.
type Colors struct {
	Background []string `json:"background"`
	Border     []string `json:"border"`
}

// Config описывает оформление диаграммы.
type Config struct {
	Label      string
	XAxisTitle string
	YAxisTitle string
	Colors     Colors
}

// DefaultColors - палитра по умолчанию.
var DefaultColors = Colors{
	Background: []string{
		"rgba(54, 162, 235, 0.6)",
		"rgba(75, 192, 192, 0.6)",
		"rgba(255, 206, 86, 0.6)",
		"rgba(255, 99, 132, 0.6)",
		"rgba(153, 102, 255, 0.6)",
		"rgba(255, 159, 64, 0.6)",
	},
	Border: []string{
		"rgba(54, 162, 235, 1)",
		"rgba(75, 192, 192, 1)",
		"rgba(255, 206, 86, 1)",
		"rgba(255, 99, 132, 1)",
		"rgba(153, 102, 255, 1)",
		"rgba(255, 159, 64, 1)",
	},
}

// BarChart - диаграмма, привязанная к canvas.
type BarChart struct {
	CanvasID  string `json:"canvasId"`
	Spec      Spec   `json:"spec"`
	destroyed bool
}

// Destroyed сообщает, была ли диаграмма уничтожена.
func (c *BarChart) Destroyed() bool {
	return c.destroyed
}

// Renderer хранит диаграммы по идентификатору canvas.
type Renderer struct {
	mu     sync.Mutex
	charts map[string]*BarChart
}

// NewRenderer создаёт пустой Renderer.
func NewRenderer() *Renderer {
	return &Renderer{charts: make(map[string]*BarChart)}
}

// CreateBarChart уничтожает прежнюю диаграмму на canvas и строит новую.
func (r *Renderer) CreateBarChart(canvasID string, data Series, cfg Config) *BarChart {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.charts[canvasID]; ok {
		existing.destroyed = true
		delete(r.charts, canvasID)
	}

	chart := &BarChart{
		CanvasID: canvasID,
		Spec:     buildSpec(data, cfg),
	}
	r.charts[canvasID] = chart
	return chart
}

// Get возвращает диаграмму, привязанную к canvas.
func (r *Renderer) Get(canvasID string) (*BarChart, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	chart, ok := r.charts[canvasID]
	return chart, ok
}

// Destroy уничтожает диаграмму на canvas.
func (r *Renderer) Destroy(canvasID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if chart, ok := r.charts[canvasID]; ok {
		chart.destroyed = true
		delete(r.charts, canvasID)
	}
}

// Len возвращает количество живых диаграмм.
func (r *Renderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.charts)
}

func cycle(palette []string, n int) []string {
	if len(palette) == 0 {
		return nil
	}
	colors := make([]string, n)
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
