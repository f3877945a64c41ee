package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/senyabanana/pncp-search/internal/models"
	"github.com/senyabanana/pncp-search/internal/repository"

	"github.com/google/uuid"
)

const maxStorageKeyLength = 100

// SavedSearchService ведёт список последних сохранённых поисков.
type SavedSearchService struct {
	Repo repository.SavedSearchRepository
	now  func() time.Time
}

// NewSavedSearchService создаёт новый экземпляр SavedSearchService.
func NewSavedSearchService(repo repository.SavedSearchRepository) *SavedSearchService {
	return &SavedSearchService{Repo: repo, now: time.Now}
}

// Save добавляет снимок фильтров в начало списка и обрезает список до MaxSavedSearches.
func (s *SavedSearchService) Save(ctx context.Context, key string, req models.SavedSearchRequest) (*models.SavedSearch, error) {
	key, err := storageKey(key)
	if err != nil {
		return nil, err
	}

	searches, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Pesquisa %d", now.UnixMilli())
	}
	saved := models.SavedSearch{
		ID:        uuid.New().String(),
		Name:      name,
		Filters:   req.Filters.Clone(),
		Timestamp: now,
	}

	searches = append([]models.SavedSearch{saved}, searches...)
	if len(searches) > models.MaxSavedSearches {
		searches = searches[:models.MaxSavedSearches]
	}

	payload, err := json.Marshal(searches)
	if err != nil {
		return nil, fmt.Errorf("failed to encode saved searches: %w", err)
	}
	if err := s.Repo.Store(ctx, key, payload); err != nil {
		return nil, err
	}
	return &saved, nil
}

// List возвращает сохранённые поиски, новые первыми.
func (s *SavedSearchService) List(ctx context.Context, key string) ([]models.SavedSearch, error) {
	key, err := storageKey(key)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, key)
}

// Clear удаляет список целиком.
func (s *SavedSearchService) Clear(ctx context.Context, key string) error {
	key, err := storageKey(key)
	if err != nil {
		return err
	}
	return s.Repo.Clear(ctx, key)
}

func (s *SavedSearchService) load(ctx context.Context, key string) ([]models.SavedSearch, error) {
	payload, err := s.Repo.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	searches := []models.SavedSearch{}
	if len(payload) == 0 {
		return searches, nil
	}
	if err := json.Unmarshal(payload, &searches); err != nil {
		return nil, fmt.Errorf("failed to decode saved searches: %w", err)
	}
	return searches, nil
}

func storageKey(key string) (string, error) {
	if key == "" {
		return models.DefaultSavedSearchKey, nil
	}
	if len(key) > maxStorageKeyLength {
		return "", models.NewErrorResponse(http.StatusBadRequest, "storage key is too long")
	}
	return key, nil
}
