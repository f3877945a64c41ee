// Package presets содержит быстрые фильтры страницы поиска.
package presets

import (
	"fmt"
	"net/http"

	"github.com/senyabanana/pncp-search/internal/models"
)

var quickFilters = []models.QuickFilterPreset{
	{
		Name:    "Pregões SP",
		Color:   "primary",
		Filters: models.FilterState{UF: "SP", CodigoModalidadeContratacao: "6"},
	},
	{
		Name:    "Valores Altos",
		Color:   "success",
		Filters: models.FilterState{ValorMinimo: "1000000"},
	},
	{
		Name:    "TI",
		Color:   "info",
		Filters: models.FilterState{PalavraChave: "tecnologia informação software hardware"},
	},
	{
		Name:    "Obras",
		Color:   "warning",
		Filters: models.FilterState{PalavraChave: "construção obra reforma infraestrutura"},
	},
}

// All возвращает копию списка быстрых фильтров.
func All() []models.QuickFilterPreset {
	out := make([]models.QuickFilterPreset, len(quickFilters))
	for i, p := range quickFilters {
		p.Filters = p.Filters.Clone()
		out[i] = p
	}
	return out
}

// Find ищет быстрый фильтр по имени.
func Find(name string) (models.QuickFilterPreset, error) {
	for _, p := range quickFilters {
		if p.Name == name {
			p.Filters = p.Filters.Clone()
			return p, nil
		}
	}
	return models.QuickFilterPreset{}, models.NewErrorResponse(http.StatusNotFound, fmt.Sprintf("quick filter not found: %s", name))
}
