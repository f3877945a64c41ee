package models

// OpenTendersEndpoint - путь листинга открытых закупок.
const OpenTendersEndpoint = "/licitacoes/abertas"

// OrgaoEntidade представляет орган, объявивший закупку.
type OrgaoEntidade struct {
	CNPJ        string `json:"cnpj,omitempty"`
	RazaoSocial string `json:"razaoSocial,omitempty"`
	UfSigla     string `json:"ufSigla,omitempty"`
}

// UnidadeOrgao представляет подразделение органа.
type UnidadeOrgao struct {
	UfSigla       string `json:"ufSigla,omitempty"`
	UfNome        string `json:"ufNome,omitempty"`
	MunicipioNome string `json:"municipioNome,omitempty"`
	NomeUnidade   string `json:"nomeUnidade,omitempty"`
}

// ItemLicitacao представляет позицию закупки.
type ItemLicitacao struct {
	NumeroItem    int     `json:"numeroItem,omitempty"`
	Descricao     string  `json:"descricao,omitempty"`
	Quantidade    float64 `json:"quantidade,omitempty"`
	ValorUnitario float64 `json:"valorUnitario,omitempty"`
	ValorTotal    float64 `json:"valorTotal,omitempty"`
}

// Tender представляет модель открытой закупки из PNCP.
type Tender struct {
	NumeroControlePNCP       string          `json:"numeroControlePNCP,omitempty"`
	NumeroCompra             string          `json:"numeroCompra,omitempty"`
	Processo                 string          `json:"processo,omitempty"`
	ObjetoCompra             string          `json:"objetoCompra,omitempty"`
	ModalidadeID             int             `json:"modalidadeId,omitempty"`
	ModalidadeNome           string          `json:"modalidadeNome,omitempty"`
	ValorTotalEstimado       *float64        `json:"valorTotalEstimado,omitempty"`
	DataAberturaProposta     string          `json:"dataAberturaProposta,omitempty"`
	DataEncerramentoProposta string          `json:"dataEncerramentoProposta,omitempty"`
	DataPublicacaoPncp       string          `json:"dataPublicacaoPncp,omitempty"`
	OrgaoEntidade            *OrgaoEntidade  `json:"orgaoEntidade,omitempty"`
	UnidadeOrgao             *UnidadeOrgao   `json:"unidadeOrgao,omitempty"`
	Itens                    []ItemLicitacao `json:"itens,omitempty"`
}

// EstimatedValue возвращает оценочную стоимость, отсутствующая считается нулём.
func (t Tender) EstimatedValue() float64 {
	if t.ValorTotalEstimado == nil {
		return 0
	}
	return *t.ValorTotalEstimado
}

// UF возвращает код штата закупки.
func (t Tender) UF() string {
	if t.UnidadeOrgao != nil && t.UnidadeOrgao.UfSigla != "" {
		return t.UnidadeOrgao.UfSigla
	}
	if t.OrgaoEntidade != nil {
		return t.OrgaoEntidade.UfSigla
	}
	return ""
}

// ResultSet представляет ответ листинга: страница закупок и общее количество.
type ResultSet struct {
	Data             []Tender `json:"data"`
	TotalRegistros   int      `json:"totalRegistros"`
	TotalPaginas     int      `json:"totalPaginas,omitempty"`
	NumeroPagina     int      `json:"numeroPagina,omitempty"`
	PaginasRestantes int      `json:"paginasRestantes,omitempty"`
	Empty            bool     `json:"empty,omitempty"`
}

// TenderDetails представляет ссылку на карточку закупки на портале PNCP.
type TenderDetails struct {
	NumeroControlePNCP string `json:"numeroControlePNCP"`
	PncpWebURL         string `json:"pncp_web_url,omitempty"`
	Message            string `json:"message"`
	Status             string `json:"status"`
}
