package filters

import (
	"time"

	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/utils"
)

// PostFilter применяет фильтры, которых нет в API: диапазон суммы и
// крайний срок приёма предложений. totalRegistros пересчитывается по результату.
func PostFilter(rs models.ResultSet, f Filters, now time.Time) models.ResultSet {
	data := rs.Data

	valorMin, hasMin := f.Float(KeyValorMinimo)
	valorMax, hasMax := f.Float(KeyValorMaximo)
	if hasMin || hasMax {
		data = filterTenders(data, func(t models.Tender) bool {
			return InValueRange(t.EstimatedValue(), valorMin, hasMin, valorMax, hasMax)
		})
	}

	if days, ok := f.Int(KeyPrazoMaximo); ok {
		limit := day(now).AddDate(0, 0, days)
		data = filterTenders(data, func(t models.Tender) bool {
			return WithinDeadline(t.DataEncerramentoProposta, limit)
		})
	}

	if data == nil {
		data = []models.Tender{}
	}
	out := rs
	out.Data = data
	out.TotalRegistros = len(data)
	return out
}

// InValueRange проверяет, что сумма лежит в [min, max]; любая граница необязательна.
func InValueRange(value, min float64, hasMin bool, max float64, hasMax bool) bool {
	return (!hasMin || value >= min) && (!hasMax || value <= max)
}

// WithinDeadline проверяет, что дата закрытия не позже limit (по календарным дням).
// Отсутствующая или неразборчивая дата фильтр проходит.
func WithinDeadline(closing string, limit time.Time) bool {
	end, ok := utils.ParseDate(closing)
	if !ok {
		return true
	}
	return !day(end).After(limit)
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func filterTenders(data []models.Tender, keep func(models.Tender) bool) []models.Tender {
	out := make([]models.Tender, 0, len(data))
	for _, t := range data {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
