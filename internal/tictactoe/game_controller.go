package tictactoe

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const (
	StateWin     = "win"
	StateDraw    = "draw"
	StatePlaying = "playing"
)

// CellView - a single square as the page draws it.
type CellView struct {
	Index    int         `json:"index"`
	Mark     entity.Mark `json:"mark"`
	Disabled bool        `json:"disabled"`
}

// View - everything the page needs to draw the board and the status line.
type View struct {
	GameID  string                     `json:"game_id"`
	Cells   [entity.BoardSize]CellView `json:"cells"`
	Turn    entity.Mark                `json:"player_turn"`
	Outcome entity.Outcome             `json:"outcome"`
	State   string                     `json:"state"`
	Status  string                     `json:"status"`
}

// GameController - glue between user activations and the game state.
type GameController struct {
	game *entity.Game
}

func NewGameController(game *entity.Game) *GameController {
	return &GameController{game: game}
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

// ActivateCell - handles a click on a cell. Indices outside the board are rejected with an error,
// occupied cells and finished games are silently ignored.
func (that *GameController) ActivateCell(cell int) (bool, error) {
	if !entity.IsValidCell(cell) {
		return false, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	return that.game.ApplyMove(cell), nil
}

func (that *GameController) Reset() {
	that.game.Reset()
}

func (that *GameController) Render() View {
	game := that.game
	outcome := game.GetOutcome()

	view := View{
		GameID:  game.ID,
		Turn:    game.Turn,
		Outcome: outcome,
		State:   stateTag(outcome),
		Status:  StatusLine(game),
	}

	for i, mark := range game.Board {
		view.Cells[i] = CellView{
			Index:    i,
			Mark:     mark,
			Disabled: mark != entity.EmptyCell || outcome.IsFinished(),
		}
	}

	return view
}

// StatusLine - "Winner: X", "Draw!" or "Next: O"; a win takes precedence over a draw.
func StatusLine(game *entity.Game) string {
	outcome := game.GetOutcome()

	switch {
	case outcome.IsWin():
		return "Winner: " + string(outcome.Winner())
	case outcome.IsDraw():
		return "Draw!"
	default:
		return "Next: " + string(game.Turn)
	}
}

func stateTag(outcome entity.Outcome) string {
	switch {
	case outcome.IsWin():
		return StateWin
	case outcome.IsDraw():
		return StateDraw
	default:
		return StatePlaying
	}
}

// String draws the board as text, free cells are shown by their index.
func (that *GameController) String() string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			cell := row*3 + col

			symbol := string(that.game.Board[cell])
			if symbol == "" {
				symbol = fmt.Sprint(cell)
			}

			if col > 0 {
				sb.WriteString("|")
			}
			sb.WriteString(" " + symbol + " ")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(StatusLine(that.game))

	return sb.String()
}
