package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// SavedSearchRepository - интерфейс хранилища списка сохранённых поисков.
// Список читается и пишется целиком в сериализованном виде.
type SavedSearchRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Store(ctx context.Context, key string, payload []byte) error
	Clear(ctx context.Context, keys ...string) error
}

// PostgresSavedSearchRepository - реализация SavedSearchRepository для базы данных.
type PostgresSavedSearchRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresSavedSearchRepository создаёт новый экземпляр PostgresSavedSearchRepository.
func NewPostgresSavedSearchRepository(db *pgxpool.Pool) *PostgresSavedSearchRepository {
	return &PostgresSavedSearchRepository{DB: db}
}

// Load возвращает сериализованный список по ключу; nil, если его нет.
func (r *PostgresSavedSearchRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := r.DB.QueryRow(ctx, `SELECT payload FROM saved_search_list WHERE storage_key = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load saved searches: %w", err)
	}
	return payload, nil
}

// Store заменяет список по ключу целиком.
func (r *PostgresSavedSearchRepository) Store(ctx context.Context, key string, payload []byte) error {
	_, err := r.DB.Exec(ctx, `
       INSERT INTO saved_search_list (storage_key, payload, updated_at)
       VALUES ($1, $2, now())
       ON CONFLICT (storage_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
   `, key, payload)
	if err != nil {
		return fmt.Errorf("failed to store saved searches: %w", err)
	}
	return nil
}

// Clear удаляет списки по ключам.
func (r *PostgresSavedSearchRepository) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.DB.Exec(ctx, `DELETE FROM saved_search_list WHERE storage_key = ANY($1)`, pq.Array(keys))
	if err != nil {
		return fmt.Errorf("failed to clear saved searches: %w", err)
	}
	return nil
}

// MemorySavedSearchRepository хранит списки в памяти процесса.
type MemorySavedSearchRepository struct {
	mu    sync.RWMutex
	lists map[string][]byte
}

// NewMemorySavedSearchRepository создаёт новый экземпляр MemorySavedSearchRepository.
func NewMemorySavedSearchRepository() *MemorySavedSearchRepository {
	return &MemorySavedSearchRepository{lists: make(map[string][]byte)}
}

func (r *MemorySavedSearchRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.lists[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), payload...), nil
}

func (r *MemorySavedSearchRepository) Store(_ context.Context, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists[key] = append([]byte(nil), payload...)
	return nil
}

func (r *MemorySavedSearchRepository) Clear(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, key := range keys {
		delete(r.lists, key)
	}
	return nil
}
