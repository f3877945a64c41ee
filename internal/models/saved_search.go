package models

import "time"

// MaxSavedSearches - максимальная длина списка сохранённых поисков.
const MaxSavedSearches = 10

// DefaultSavedSearchKey - ключ хранилища по умолчанию.
const DefaultSavedSearchKey = "savedSearches"

// SavedSearch представляет снимок фильтров, сохранённый пользователем.
type SavedSearch struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Filters   FilterState `json:"filters"`
	Timestamp time.Time   `json:"timestamp"`
}

// SavedSearchRequest представляет тело запроса на сохранение поиска.
type SavedSearchRequest struct {
	Name    string      `json:"name"`
	Filters FilterState `json:"filters"`
}
