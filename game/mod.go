package game

// Player identifies a participant of the game. NoPlayer marks "nobody", e.g. the winner of a draw.
type Player int

const NoPlayer Player = 0

// Board holds the rules of an alternating-turn, zero-sum game. States are values:
// Play must return a new state and never alias or mutate the one it was given.
type Board[S any, M comparable] interface {
	// LegalMoves returns the moves available to the player to move, an empty slice once the game is over
	LegalMoves(state S) []M
	Play(state S, move M) S
	IsEnded(state S) bool
	// Points scores a finished game per player, between -1 (loss) and 1 (win)
	Points(state S) map[Player]float64
	// Player returns the player to move in state
	Player(state S) Player
}

// Winner returns the player with the highest positive score, or NoPlayer on a draw.
func Winner(points map[Player]float64) Player {
	winner := NoPlayer
	best := 0.0
	for player, score := range points {
		if score > best || (score == best && winner != NoPlayer && player < winner) {
			winner = player
			best = score
		}
	}
	return winner
}
