package filters

import (
	"net/url"
	"strconv"
	"strings"
)

// apiKeys - параметры, которые понимает листинг открытых закупок.
var apiKeys = []string{KeyUF, KeyModalidade, KeyPalavraChave, KeyDataFinal, KeyPagina, KeyTamanhoPagina}

// TransformForAPI приводит фильтры к параметрам API.
// API принимает один штат и одну модальность, поэтому из списков берётся
// только первый элемент. Сумма и срок в запрос не попадают.
func TransformForAPI(f Filters) url.Values {
	api := make(Filters, len(f))
	for key, value := range f {
		api[key] = value
	}

	if estados := f.Strings(KeyEstados); len(estados) > 0 {
		api[KeyUF] = estados[0]
	}
	if modalidades := f.Strings(KeyModalidades); len(modalidades) > 0 {
		api[KeyModalidade] = modalidades[0]
	}
	if advanced := f.String(KeyPalavrasChaveAvancada); advanced != "" {
		parts := make([]string, 0, 2)
		if basic := f.String(KeyPalavraChave); basic != "" {
			parts = append(parts, basic)
		}
		api[KeyPalavraChave] = strings.Join(append(parts, advanced), " ")
	}

	params := url.Values{}
	for _, key := range apiKeys {
		switch v := api[key].(type) {
		case string:
			if v != "" {
				params.Set(key, v)
			}
		case int:
			params.Set(key, strconv.Itoa(v))
		case float64:
			params.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	return params
}
