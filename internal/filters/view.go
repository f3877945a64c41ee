package filters

import (
	"context"
	"net/url"

	"github.com/senyabanana/pncp-search/internal/models"
)

// Gateway выполняет запрос к API листинга.
type Gateway interface {
	Get(ctx context.Context, endpoint string, params url.Values) ([]byte, error)
}

// SavedSearchStore сохраняет снимок фильтров.
type SavedSearchStore interface {
	Save(ctx context.Context, key string, req models.SavedSearchRequest) (*models.SavedSearch, error)
}

// DisplayFunc отрисовывает результаты поиска на странице.
type DisplayFunc func(models.ResultSet)

// View - элементы страницы, которыми управляет контроллер.
type View interface {
	ShowLoading()
	HideLoading()
	// SetActiveFilterCount показывает счётчик; ноль скрывает его.
	SetActiveFilterCount(count int)
	ShowError(message string)
	SetResultsInfo(total int, filtered bool)
	ClearResultsInfo()
	// HighlightQuickFilter подсвечивает быстрый фильтр; пустое имя снимает подсветку.
	HighlightQuickFilter(name string)
	ShowToast(message, kind string)
}

type nopView struct{}

func (nopView) ShowLoading()                {}
func (nopView) HideLoading()                {}
func (nopView) SetActiveFilterCount(int)    {}
func (nopView) ShowError(string)            {}
func (nopView) SetResultsInfo(int, bool)    {}
func (nopView) ClearResultsInfo()           {}
func (nopView) HighlightQuickFilter(string) {}
func (nopView) ShowToast(string, string)    {}
