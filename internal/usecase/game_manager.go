package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - runs games for page sessions and keeps a snapshot of each one,
// so that a page whose connection dropped can pick its board up again.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	newID    func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
		newID:    func() string { return uuid.New().String() },
	}
}

func (that *GameManager) NewGame(ctx context.Context) (*tictactoe.GameController, error) {
	game := entity.NewGame(that.newID())

	if err := that.saveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game created", "game_id", game.ID)

	return tictactoe.NewGameController(game), nil
}

func (that *GameManager) ResumeGame(ctx context.Context, id string) (*tictactoe.GameController, error) {
	if id == "" {
		return nil, apperror.ErrGameNotFound
	}

	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	that.logger.Debug("game resumed", "game_id", game.ID, "outcome", game.GetOutcome())

	return tictactoe.NewGameController(game), nil
}

// MakeTurn - applies a cell activation. Only accepted moves are saved.
func (that *GameManager) MakeTurn(ctx context.Context, controller *tictactoe.GameController, cell int) (bool, error) {
	accepted, err := controller.ActivateCell(cell)
	if err != nil {
		return false, fmt.Errorf("failed make turn: %w", err)
	}

	if !accepted {
		return false, nil
	}

	if err = that.saveGame(ctx, controller.Game()); err != nil {
		return true, fmt.Errorf("failed update game: %w", err)
	}

	if controller.Game().IsFinished() {
		that.logger.Info("game finished", "game_id", controller.Game().ID, "outcome", controller.Game().GetOutcome())
	}

	return true, nil
}

func (that *GameManager) ResetGame(ctx context.Context, controller *tictactoe.GameController) error {
	controller.Reset()

	if err := that.saveGame(ctx, controller.Game()); err != nil {
		return fmt.Errorf("failed update game: %w", err)
	}

	return nil
}

// CloseGame - drops the snapshot of a game the page will not come back to.
func (that *GameManager) CloseGame(ctx context.Context, controller *tictactoe.GameController) {
	log := that.logger.With("method", "CloseGame")

	err := that.gameRepo.DeleteByID(ctx, controller.Game().ID)
	if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		log.Error("failed to delete game", "game_id", controller.Game().ID, "error", err)
		return
	}

	log.Debug("game closed", "game_id", controller.Game().ID)
}

func (that *GameManager) saveGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}
