package entity

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const BoardSize = 9

// Mark - content of a cell, also used to say whose turn it is.
type Mark string

// Opponent returns the mark that plays after this one.
func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Board - 3x3 grid in row-major order: row = index / 3, column = index % 3.
type Board [BoardSize]Mark

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

// IsValidCell reports whether index addresses a cell of the board.
func IsValidCell(index int) bool {
	return index >= 0 && index < BoardSize
}

// Game - state of a single game: the board, whose turn it is and the outcome derived from the board.
type Game struct {
	ID      string  `json:"id"`
	Board   Board   `json:"board"`
	Turn    Mark    `json:"player_turn"`
	Outcome Outcome `json:"outcome"`
}

func NewGame(id string) *Game {
	game := &Game{ID: id}
	game.Reset()

	return game
}

// ApplyMove - places the mark of the current turn into the cell.
// The move is ignored when the cell is taken, the index is out of range or the game is over.
func (that *Game) ApplyMove(cell int) bool {
	if !IsValidCell(cell) {
		return false
	}

	if that.Outcome.IsFinished() || that.Board[cell] != EmptyCell {
		return false
	}

	that.Board[cell] = that.Turn
	that.Turn = that.Turn.Opponent()
	that.Outcome = Evaluate(that.Board)

	return true
}

// Reset - returns the game to its initial state.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
	that.Outcome = OutcomeInProgress
}

func (that *Game) GetOutcome() Outcome {
	return that.Outcome
}

// Recalculate - derives the outcome from the board again, used after loading a stored snapshot.
func (that *Game) Recalculate() {
	if that.Turn != PlayerO {
		that.Turn = PlayerX
	}
	that.Outcome = Evaluate(that.Board)
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsFinished()
}
