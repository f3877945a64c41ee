// Package filters собирает состояние формы в запрос к API и
// дофильтровывает ответ по полям, которых API не понимает.
package filters

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/utils"
)

// Ключи нормализованного набора фильтров.
const (
	KeyUF                    = "uf"
	KeyModalidade            = "codigoModalidadeContratacao"
	KeyPalavraChave          = "palavraChave"
	KeyDataFinal             = "dataFinal"
	KeyPagina                = "pagina"
	KeyTamanhoPagina         = "tamanhoPagina"
	KeyValorMinimo           = "valorMinimo"
	KeyValorMaximo           = "valorMaximo"
	KeyEstados               = "estados"
	KeyModalidades           = "modalidades"
	KeyPalavrasChaveAvancada = "palavrasChaveAvancada"
	KeyPrazoMaximo           = "prazoMaximo"
)

// alwaysPresent - число ключей, которые форма задаёт всегда: пагинация и dataFinal.
const alwaysPresent = 3

// Filters - нормализованный набор фильтров.
// Значения: string, int, float64 или []string.
type Filters map[string]any

// DefaultFilterState возвращает значения формы по умолчанию.
func DefaultFilterState(now time.Time) models.FilterState {
	return models.FilterState{
		DataFinal:     now.Format("2006-01-02"),
		Pagina:        "1",
		TamanhoPagina: "10",
	}
}

// Collect читает все поля формы и возвращает нормализованный набор.
func Collect(form models.FilterState) Filters {
	f := Filters{
		KeyUF:                    form.UF,
		KeyModalidade:            form.CodigoModalidadeContratacao,
		KeyPalavraChave:          form.PalavraChave,
		KeyDataFinal:             form.DataFinal,
		KeyPagina:                intOr(form.Pagina, 1),
		KeyTamanhoPagina:         intOr(form.TamanhoPagina, 10),
		KeyEstados:               form.MultipleUf,
		KeyModalidades:           form.MultipleModalidades,
		KeyPalavrasChaveAvancada: form.PalavrasChaveAvancada,
	}
	if v, ok := utils.ParseCurrency(form.ValorMinimo); ok {
		f[KeyValorMinimo] = v
	}
	if v, ok := utils.ParseCurrency(form.ValorMaximo); ok {
		f[KeyValorMaximo] = v
	}
	if days, err := strconv.Atoi(strings.TrimSpace(form.PrazoMaximo)); err == nil {
		f[KeyPrazoMaximo] = days
	}
	return Normalize(f)
}

// Normalize удаляет пустые значения: nil, пустые строки, пустые списки,
// нулевые и NaN суммы. Повторная нормализация ничего не меняет.
func Normalize(f Filters) Filters {
	out := make(Filters, len(f))
	for key, value := range f {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
			out[key] = v
		case []string:
			values := make([]string, 0, len(v))
			for _, s := range v {
				if strings.TrimSpace(s) != "" {
					values = append(values, s)
				}
			}
			if len(values) == 0 {
				continue
			}
			out[key] = values
		case float64:
			if v == 0 || math.IsNaN(v) {
				continue
			}
			out[key] = v
		default:
			out[key] = v
		}
	}
	return out
}

// ActiveCount возвращает число активных фильтров без пагинации.
func ActiveCount(f Filters) int {
	count := len(f) - alwaysPresent
	if count < 0 {
		return 0
	}
	return count
}

// String возвращает строковое значение ключа.
func (f Filters) String(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

// Strings возвращает список значений ключа.
func (f Filters) Strings(key string) []string {
	if v, ok := f[key].([]string); ok {
		return v
	}
	return nil
}

// Float возвращает сумму по ключу, если она задана.
func (f Filters) Float(key string) (float64, bool) {
	v, ok := f[key].(float64)
	return v, ok
}

// Int возвращает целое значение по ключу, если оно задано.
func (f Filters) Int(key string) (int, bool) {
	v, ok := f[key].(int)
	return v, ok
}

func intOr(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
