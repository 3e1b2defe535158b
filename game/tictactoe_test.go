package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTicTacToePlay(t *testing.T) {
	t.Run("alternates players and leaves the previous state untouched", func(t *testing.T) {
		board, state := NewTicTacToe()

		next := board.Play(state, 4)

		require.Equal(t, PlayerX, board.Player(state), "Original state should be unchanged")
		require.Equal(t, NoPlayer, state.Cells[4], "Original state should be unchanged")
		require.Equal(t, PlayerX, next.Cells[4], "Move should be placed for the player to move")
		require.Equal(t, PlayerO, board.Player(next), "Turn should pass to the opponent")
		require.Len(t, board.LegalMoves(next), 8, "Occupied cell should no longer be legal")
	})

	t.Run("panics on an occupied cell", func(t *testing.T) {
		board, state := NewTicTacToe()
		state = board.Play(state, 0)

		require.Panics(t, func() { board.Play(state, 0) }, "Should panic on an illegal move")
	})
}

func TestTicTacToeEnd(t *testing.T) {
	t.Run("win ends the game with no legal moves", func(t *testing.T) {
		board := TicTacToe{}
		state, err := ParseTicTacToe("xxx/oo./...")
		require.NoError(t, err)

		require.True(t, board.IsEnded(state), "Completed line should end the game")
		require.Empty(t, board.LegalMoves(state), "Finished game should have no legal moves")
		require.Equal(t, map[Player]float64{PlayerX: 1, PlayerO: -1}, board.Points(state))
		require.Equal(t, PlayerX, Winner(board.Points(state)))
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		board := TicTacToe{}
		state, err := ParseTicTacToe("xox/xoo/oxx")
		require.NoError(t, err)

		require.True(t, board.IsEnded(state), "Full board should end the game")
		require.Equal(t, map[Player]float64{PlayerX: 0, PlayerO: 0}, board.Points(state))
		require.Equal(t, NoPlayer, Winner(board.Points(state)), "Draw should have no winner")
	})
}

func TestWinsImmediately(t *testing.T) {
	board := TicTacToe{}
	state, err := ParseTicTacToe("xx./oo./...")
	require.NoError(t, err)

	require.True(t, board.WinsImmediately(state, 2), "Completing the top row should win")
	require.False(t, board.WinsImmediately(state, 5), "Blocking move should not win for x")
	require.False(t, board.WinsImmediately(state, 0), "Occupied cell should not win")
}

func TestParseTicTacToe(t *testing.T) {
	t.Run("infers the player to move", func(t *testing.T) {
		state, err := ParseTicTacToe("x.. ... ...")
		require.NoError(t, err)
		require.Equal(t, PlayerO, state.Turn)
		require.Equal(t, "x..\n...\n...", state.String(), "Rendering should round trip")
	})

	t.Run("rejects malformed boards", func(t *testing.T) {
		for _, board := range []string{"x..", "xx.......", "x.q......", "..........x"} {
			_, err := ParseTicTacToe(board)
			require.Error(t, err, "Board %q should be rejected", board)
		}
	})
}
