package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

type memoryRecord struct {
	game      entity.Game
	expiresAt time.Time
}

type memoryGame struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	records map[string]memoryRecord
}

// NewMemoryGameRepository - keeps game snapshots in process memory. Expired snapshots are dropped lazily.
func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return newMemoryGameRepository(ttl, time.Now)
}

func newMemoryGameRepository(ttl time.Duration, now func() time.Time) *memoryGame {
	return &memoryGame{
		ttl:     ttl,
		now:     now,
		records: make(map[string]memoryRecord),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	now := that.now()
	that.sweep(now)

	record := memoryRecord{game: *game}
	if that.ttl > 0 {
		record.expiresAt = now.Add(that.ttl)
	}
	that.records[game.ID] = record

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, ok := that.lookup(id)
	if !ok {
		return &entity.Game{}, apperror.ErrGameNotFound
	}

	existingGame := record.game
	existingGame.Recalculate()

	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(id); !ok {
		return apperror.ErrGameNotFound
	}
	delete(that.records, id)

	return nil
}

// lookup returns a live record, dropping it when it has expired. Callers hold the lock.
func (that *memoryGame) lookup(id string) (memoryRecord, bool) {
	record, ok := that.records[id]
	if !ok {
		return memoryRecord{}, false
	}

	if record.expired(that.now()) {
		delete(that.records, id)
		return memoryRecord{}, false
	}

	return record, true
}

func (that *memoryGame) sweep(now time.Time) {
	for id, record := range that.records {
		if record.expired(now) {
			delete(that.records, id)
		}
	}
}

func (that memoryRecord) expired(now time.Time) bool {
	return !that.expiresAt.IsZero() && !now.Before(that.expiresAt)
}
