package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"uctbot/game"
	"uctbot/searcher"

	"github.com/rs/zerolog/log"
)

type findMoveRequest struct {
	Board string `json:"board"`
}

type findMoveResponse struct {
	Move     int    `json:"move"`
	Board    string `json:"board"` // After the move
	Episodes int    `json:"episodes"`
}

type server struct {
	mu    sync.Mutex // Searchers are not safe for concurrent use
	agent Agent[game.TicTacToeState, int]
	board game.TicTacToe
}

// NewServer returns an HTTP handler answering POST /findmove with the agent's move for a
// tic-tac-toe board. Requests are searched one at a time.
func NewServer(a Agent[game.TicTacToeState, int]) http.Handler {
	s := &server{agent: a}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /findmove", s.handleFindMove)
	return mux
}

func (s *server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var payload findMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	state, err := game.ParseTicTacToe(payload.Board)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	move, metric, err := s.agent.FindMove(state)
	s.mu.Unlock()
	if errors.Is(err, searcher.ErrNoLegalMoves) {
		http.Error(w, "game is over", http.StatusConflict)
		return
	}
	if err != nil {
		log.Error().Err(err).Msgf("failed to find a move for %q", payload.Board)
		http.Error(w, "failed to find a move: "+err.Error(), http.StatusInternalServerError)
		return
	}

	next := s.board.Play(state, move)
	w.Header().Set("Content-Type", "application/json")
	resp := findMoveResponse{Move: move, Board: next.String(), Episodes: metric.Episodes}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Error().Err(err).Msg("failed to encode move")
	}
}
