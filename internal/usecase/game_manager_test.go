package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	return args.Get(0).(*entity.Game), args.Error(1)
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newTestManager(t *testing.T) (*GameManager, *mockGameRepo) {
	t.Helper()

	repo := &mockGameRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := NewGameManager(logger, repo)
	manager.newID = func() string { return "game-1" }

	return manager, repo
}

func TestGameManager_NewGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates and saves a new game", func(t *testing.T) {
		// Given: a repository that accepts the snapshot
		manager, repo := newTestManager(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Once()

		// When: a new game is requested
		controller, err := manager.NewGame(ctx)

		// Then: the game is fresh and has an ID
		require.NoError(t, err)
		assert.Equal(t, entity.NewGame("game-1"), controller.Game())
	})

	t.Run("Uses uuid identifiers", func(t *testing.T) {
		repo := &mockGameRepo{}
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(nil).Twice()
		manager := NewGameManager(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)

		first, err := manager.NewGame(ctx)
		require.NoError(t, err)
		second, err := manager.NewGame(ctx)
		require.NoError(t, err)

		assert.Len(t, first.Game().ID, 36)
		assert.NotEqual(t, first.Game().ID, second.Game().ID)
		repo.AssertExpectations(t)
	})

	t.Run("Returns error if the snapshot cannot be saved", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("CreateOrUpdate", ctx, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()

		controller, err := manager.NewGame(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, controller)
	})
}

func TestGameManager_ResumeGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the stored game", func(t *testing.T) {
		// Given: a stored game with one move
		manager, repo := newTestManager(t)
		stored := entity.NewGame("game-1")
		stored.ApplyMove(4)
		repo.On("GetByID", ctx, "game-1").Return(stored, nil).Once()

		// When: the game is resumed
		controller, err := manager.ResumeGame(ctx, "game-1")

		// Then: the board continues where it was
		require.NoError(t, err)
		assert.Equal(t, "Next: O", controller.Render().Status)
	})

	t.Run("Returns ErrGameNotFound for unknown games", func(t *testing.T) {
		manager, repo := newTestManager(t)
		repo.On("GetByID", ctx, "missing").Return(&entity.Game{}, apperror.ErrGameNotFound).Once()

		_, err := manager.ResumeGame(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("Empty id is not looked up", func(t *testing.T) {
		manager, _ := newTestManager(t)

		_, err := manager.ResumeGame(ctx, "")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted move is saved", func(t *testing.T) {
		// Given: a new game
		manager, repo := newTestManager(t)
		controller := tictactoe.NewGameController(entity.NewGame("game-1"))
		repo.On("CreateOrUpdate", ctx, controller.Game()).Return(nil).Once()

		// When: X plays the center
		accepted, err := manager.MakeTurn(ctx, controller, 4)

		// Then: the move is accepted and stored
		require.NoError(t, err)
		assert.True(t, accepted)
		assert.Equal(t, entity.PlayerX, controller.Game().Board[4])
	})

	t.Run("Rejected move does not touch storage", func(t *testing.T) {
		// Given: a game where the center is taken
		manager, _ := newTestManager(t)
		game := entity.NewGame("game-1")
		game.ApplyMove(4)
		controller := tictactoe.NewGameController(game)

		// When: O clicks the center
		accepted, err := manager.MakeTurn(ctx, controller, 4)

		// Then: nothing is saved
		require.NoError(t, err)
		assert.False(t, accepted)
	})

	t.Run("Invalid cell returns ErrInvalidCell", func(t *testing.T) {
		manager, _ := newTestManager(t)
		controller := tictactoe.NewGameController(entity.NewGame("game-1"))

		accepted, err := manager.MakeTurn(ctx, controller, 9)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.False(t, accepted)
	})

	t.Run("Storage failure is reported", func(t *testing.T) {
		manager, repo := newTestManager(t)
		controller := tictactoe.NewGameController(entity.NewGame("game-1"))
		repo.On("CreateOrUpdate", ctx, controller.Game()).Return(errRedisDown).Once()

		accepted, err := manager.MakeTurn(ctx, controller, 0)

		require.ErrorIs(t, err, errRedisDown)
		assert.True(t, accepted)
	})
}

func TestGameManager_ResetGame(t *testing.T) {
	ctx := context.Background()

	// Given: a game X has won
	manager, repo := newTestManager(t)
	game := entity.NewGame("game-1")
	for _, cell := range []int{0, 3, 1, 4, 2} {
		require.True(t, game.ApplyMove(cell))
	}
	controller := tictactoe.NewGameController(game)
	repo.On("CreateOrUpdate", ctx, game).Return(nil).Once()

	// When: the game is reset
	err := manager.ResetGame(ctx, controller)

	// Then: it is back to the start and saved
	require.NoError(t, err)
	assert.Equal(t, entity.NewGame("game-1"), controller.Game())
}

func TestGameManager_CloseGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the snapshot", func(t *testing.T) {
		manager, repo := newTestManager(t)
		controller := tictactoe.NewGameController(entity.NewGame("game-1"))
		repo.On("DeleteByID", ctx, "game-1").Return(nil).Once()

		manager.CloseGame(ctx, controller)
	})

	t.Run("Missing snapshot is fine", func(t *testing.T) {
		manager, repo := newTestManager(t)
		controller := tictactoe.NewGameController(entity.NewGame("game-1"))
		repo.On("DeleteByID", ctx, "game-1").Return(apperror.ErrGameNotFound).Once()

		manager.CloseGame(ctx, controller)
	})
}
