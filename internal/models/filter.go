package models

// Идентификаторы полей формы фильтров.
const (
	FieldUF                    = "uf"
	FieldModalidade            = "codigoModalidadeContratacao"
	FieldPalavraChave          = "palavraChave"
	FieldDataFinal             = "dataFinal"
	FieldPagina                = "pagina"
	FieldTamanhoPagina         = "tamanhoPagina"
	FieldValorMinimo           = "valorMinimo"
	FieldValorMaximo           = "valorMaximo"
	FieldMultipleUf            = "multipleUf"
	FieldMultipleModalidades   = "multipleModalidades"
	FieldPalavrasChaveAvancada = "palavrasChaveAvancada"
	FieldPrazoMaximo           = "prazoMaximo"
)

// FilterState представляет значения всех связанных элементов формы.
// Значения хранятся так, как их ввёл пользователь.
type FilterState struct {
	UF                          string   `json:"uf,omitempty"`
	CodigoModalidadeContratacao string   `json:"codigoModalidadeContratacao,omitempty"`
	PalavraChave                string   `json:"palavraChave,omitempty"`
	DataFinal                   string   `json:"dataFinal,omitempty"`
	Pagina                      string   `json:"pagina,omitempty"`
	TamanhoPagina               string   `json:"tamanhoPagina,omitempty"`
	ValorMinimo                 string   `json:"valorMinimo,omitempty"`
	ValorMaximo                 string   `json:"valorMaximo,omitempty"`
	MultipleUf                  []string `json:"multipleUf,omitempty"`
	MultipleModalidades         []string `json:"multipleModalidades,omitempty"`
	PalavrasChaveAvancada       string   `json:"palavrasChaveAvancada,omitempty"`
	PrazoMaximo                 string   `json:"prazoMaximo,omitempty"`
}

// Merge накладывает непустые поля patch поверх s.
func (s FilterState) Merge(patch FilterState) FilterState {
	merged := s
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setIf(&merged.UF, patch.UF)
	setIf(&merged.CodigoModalidadeContratacao, patch.CodigoModalidadeContratacao)
	setIf(&merged.PalavraChave, patch.PalavraChave)
	setIf(&merged.DataFinal, patch.DataFinal)
	setIf(&merged.Pagina, patch.Pagina)
	setIf(&merged.TamanhoPagina, patch.TamanhoPagina)
	setIf(&merged.ValorMinimo, patch.ValorMinimo)
	setIf(&merged.ValorMaximo, patch.ValorMaximo)
	setIf(&merged.PalavrasChaveAvancada, patch.PalavrasChaveAvancada)
	setIf(&merged.PrazoMaximo, patch.PrazoMaximo)
	if len(patch.MultipleUf) > 0 {
		merged.MultipleUf = append([]string(nil), patch.MultipleUf...)
	}
	if len(patch.MultipleModalidades) > 0 {
		merged.MultipleModalidades = append([]string(nil), patch.MultipleModalidades...)
	}
	return merged
}

// QuickFilterPreset представляет именованный набор фильтров.
type QuickFilterPreset struct {
	Name    string      `json:"name"`
	Color   string      `json:"color"`
	Filters FilterState `json:"filters"`
}

// Clone возвращает копию без общих срезов.
func (s FilterState) Clone() FilterState {
	clone := s
	clone.MultipleUf = append([]string(nil), s.MultipleUf...)
	clone.MultipleModalidades = append([]string(nil), s.MultipleModalidades...)
	return clone
}
