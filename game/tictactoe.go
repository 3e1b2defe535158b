package game

import (
	"fmt"
	"strings"
)

const (
	PlayerX Player = 1
	PlayerO Player = 2
)

// MaxTicTacToePlies is the longest possible tic-tac-toe game
const MaxTicTacToePlies = 9

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// TicTacToeState is a 3x3 board, cells indexed 0..8 row by row. It is a value type,
// copying it copies the board.
type TicTacToeState struct {
	Cells [9]Player
	Turn  Player
}

// TicTacToe implements Board for tic-tac-toe, moves are cell indices.
type TicTacToe struct{}

func NewTicTacToe() (TicTacToe, TicTacToeState) {
	return TicTacToe{}, TicTacToeState{Turn: PlayerX}
}

func (TicTacToe) LegalMoves(s TicTacToeState) []int {
	if s.winner() != NoPlayer {
		return nil
	}
	moves := make([]int, 0, 9)
	for i, cell := range s.Cells {
		if cell == NoPlayer {
			moves = append(moves, i)
		}
	}
	return moves
}

func (TicTacToe) Play(s TicTacToeState, move int) TicTacToeState {
	if move < 0 || move >= len(s.Cells) || s.Cells[move] != NoPlayer {
		panic(fmt.Sprintf("illegal tic-tac-toe move %d", move))
	}
	s.Cells[move] = s.Turn
	s.Turn = opponent(s.Turn)
	return s
}

func (TicTacToe) IsEnded(s TicTacToeState) bool {
	return s.winner() != NoPlayer || s.full()
}

func (TicTacToe) Points(s TicTacToeState) map[Player]float64 {
	switch s.winner() {
	case PlayerX:
		return map[Player]float64{PlayerX: 1, PlayerO: -1}
	case PlayerO:
		return map[Player]float64{PlayerX: -1, PlayerO: 1}
	}
	return map[Player]float64{PlayerX: 0, PlayerO: 0}
}

func (TicTacToe) Player(s TicTacToeState) Player {
	return s.Turn
}

// WinsImmediately reports whether playing move completes a line for the player to move.
func (t TicTacToe) WinsImmediately(s TicTacToeState, move int) bool {
	if s.Cells[move] != NoPlayer {
		return false
	}
	player := s.Turn
	return t.Play(s, move).winner() == player
}

func (s TicTacToeState) winner() Player {
	for _, line := range lines {
		p := s.Cells[line[0]]
		if p != NoPlayer && p == s.Cells[line[1]] && p == s.Cells[line[2]] {
			return p
		}
	}
	return NoPlayer
}

func (s TicTacToeState) full() bool {
	for _, cell := range s.Cells {
		if cell == NoPlayer {
			return false
		}
	}
	return true
}

// String renders the board as three rows of x, o and '.'.
func (s TicTacToeState) String() string {
	var sb strings.Builder
	for i, cell := range s.Cells {
		sb.WriteByte(cellSymbol(cell))
		if i%3 == 2 && i < 8 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseTicTacToe reads a board of nine cells written with x, o and '.' (or '-'), ignoring
// whitespace and '/'. The player to move is inferred from the piece count, x moves first.
func ParseTicTacToe(board string) (TicTacToeState, error) {
	var s TicTacToeState
	i := 0
	for _, r := range strings.ToLower(board) {
		switch r {
		case ' ', '\n', '\t', '/':
			continue
		}
		if i >= len(s.Cells) {
			return TicTacToeState{}, fmt.Errorf("board %q has more than 9 cells", board)
		}
		switch r {
		case 'x':
			s.Cells[i] = PlayerX
		case 'o':
			s.Cells[i] = PlayerO
		case '.', '-':
		default:
			return TicTacToeState{}, fmt.Errorf("board %q has invalid cell %q", board, r)
		}
		i++
	}
	if i != len(s.Cells) {
		return TicTacToeState{}, fmt.Errorf("board %q has %d cells, want 9", board, i)
	}

	xs, os := 0, 0
	for _, cell := range s.Cells {
		switch cell {
		case PlayerX:
			xs++
		case PlayerO:
			os++
		}
	}
	switch xs - os {
	case 0:
		s.Turn = PlayerX
	case 1:
		s.Turn = PlayerO
	default:
		return TicTacToeState{}, fmt.Errorf("board %q has %d x and %d o pieces", board, xs, os)
	}
	return s, nil
}

func cellSymbol(p Player) byte {
	switch p {
	case PlayerX:
		return 'x'
	case PlayerO:
		return 'o'
	}
	return '.'
}

func opponent(p Player) Player {
	if p == PlayerX {
		return PlayerO
	}
	return PlayerX
}
