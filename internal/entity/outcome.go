package entity

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWinX       Outcome = "win_x"
	OutcomeWinO       Outcome = "win_o"
	OutcomeDraw       Outcome = "draw"
)

// WinCombos - lines that win the game when a single mark fills them.
// Rows first, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Outcome - result of the game derived from the board.
type Outcome string

// WinFor returns the winning outcome of the given mark.
func WinFor(mark Mark) Outcome {
	switch mark {
	case PlayerX:
		return OutcomeWinX
	case PlayerO:
		return OutcomeWinO
	default:
		return OutcomeInProgress
	}
}

// Winner returns the mark that won, or EmptyCell when nobody did.
func (that Outcome) Winner() Mark {
	switch that {
	case OutcomeWinX:
		return PlayerX
	case OutcomeWinO:
		return PlayerO
	default:
		return EmptyCell
	}
}

func (that Outcome) IsWin() bool {
	return that == OutcomeWinX || that == OutcomeWinO
}

func (that Outcome) IsDraw() bool {
	return that == OutcomeDraw
}

// IsFinished reports whether no more moves are accepted.
func (that Outcome) IsFinished() bool {
	return that.IsWin() || that.IsDraw()
}

// Evaluate - determines the outcome of the board. It has no side effects and may be called on any snapshot.
func Evaluate(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return WinFor(a)
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return OutcomeInProgress
	}

	return OutcomeDraw
}
