package handlers

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/utils"
)

const objetoMaxLength = 150

// Toast - уведомление для страницы.
type Toast struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// TenderCard - карточка закупки в списке результатов, значения уже отформатированы.
type TenderCard struct {
	NumeroControlePNCP string `json:"numeroControlePNCP"`
	Objeto             string `json:"objeto"`
	Orgao              string `json:"orgao"`
	UF                 string `json:"uf"`
	Modalidade         string `json:"modalidade"`
	Valor              string `json:"valor"`
	Abertura           string `json:"abertura"`
	Encerramento       string `json:"encerramento"`
}

// PageState - то, что страница должна показать после операции контроллера.
type PageState struct {
	Form          models.FilterState `json:"form"`
	Results       *models.ResultSet  `json:"results,omitempty"`
	ActiveFilters int                `json:"activeFilters"`
	ResultsInfo   string             `json:"resultsInfo,omitempty"`
	Error         string             `json:"error,omitempty"`
	QuickFilter   string             `json:"quickFilter,omitempty"`
	Toasts        []Toast            `json:"toasts,omitempty"`
	Cards         []TenderCard       `json:"cards,omitempty"`
}

// pageView записывает вызовы контроллера в PageState.
type pageView struct {
	mu    sync.Mutex
	state PageState
}

func (v *pageView) ShowLoading() {}
func (v *pageView) HideLoading() {}

func (v *pageView) SetActiveFilterCount(count int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.ActiveFilters = count
}

func (v *pageView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Error = message
}

func (v *pageView) SetResultsInfo(total int, filtered bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	info := fmt.Sprintf("Encontradas %d licitações", total)
	if filtered {
		info += " com filtros aplicados"
	}
	v.state.ResultsInfo = info
}

func (v *pageView) ClearResultsInfo() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.ResultsInfo = ""
}

func (v *pageView) HighlightQuickFilter(name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.QuickFilter = name
}

func (v *pageView) ShowToast(message, kind string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Toasts = append(v.state.Toasts, Toast{Message: message, Kind: kind})
}

// display строит карточки для отфильтрованных результатов.
func (v *pageView) display(rs models.ResultSet) {
	cards := make([]TenderCard, 0, len(rs.Data))
	for _, t := range rs.Data {
		cards = append(cards, newTenderCard(t))
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Cards = cards
}

func newTenderCard(t models.Tender) TenderCard {
	card := TenderCard{
		NumeroControlePNCP: t.NumeroControlePNCP,
		Objeto:             utils.TruncateText(t.ObjetoCompra, objetoMaxLength),
		Orgao:              "N/A",
		UF:                 "N/A",
		Modalidade:         t.ModalidadeNome,
		Valor:              "N/A",
		Abertura:           utils.FormatDate(t.DataAberturaProposta),
		Encerramento:       utils.FormatDate(t.DataEncerramentoProposta),
	}
	if t.OrgaoEntidade != nil && t.OrgaoEntidade.RazaoSocial != "" {
		card.Orgao = t.OrgaoEntidade.RazaoSocial
	}
	if uf := t.UF(); uf != "" {
		card.UF = uf
	}
	if card.Modalidade == "" {
		card.Modalidade = "N/A"
		if t.ModalidadeID != 0 {
			card.Modalidade = utils.ModalidadeName(strconv.Itoa(t.ModalidadeID))
		}
	}
	if t.ValorTotalEstimado != nil {
		card.Valor = utils.FormatCurrency(*t.ValorTotalEstimado)
	}
	return card
}

func (v *pageView) snapshot() PageState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}
