package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"uctbot/experiments/metrics"
	"uctbot/game"
	"uctbot/searcher/agent"
)

// remoteAgent asks a move server for its tic-tac-toe moves.
type remoteAgent struct {
	url    string
	client *http.Client
	board  game.TicTacToe
}

// NewRemoteEngine sets up a tic-tac-toe game from the start position where every player's moves
// are requested from the move server at its URL.
func NewRemoteEngine(urls map[game.Player]string, client *http.Client) *LocalEngine[game.TicTacToeState, int] {
	if client == nil {
		client = http.DefaultClient
	}
	board, state := game.NewTicTacToe()
	agents := make(map[game.Player]agent.Agent[game.TicTacToeState, int], len(urls))
	for player, url := range urls {
		agents[player] = remoteAgent{url: strings.TrimSuffix(url, "/"), client: client, board: board}
	}
	return NewLocalEngine[game.TicTacToeState, int](board, state, agents)
}

// FindMove posts the board to /findmove on the agent side and checks the answer is legal.
func (a remoteAgent) FindMove(state game.TicTacToeState) (int, metrics.SearchMetric, error) {
	var metric metrics.SearchMetric
	body, err := json.Marshal(map[string]string{"board": state.String()})
	if err != nil {
		return 0, metric, err
	}

	resp, err := a.client.Post(a.url+"/findmove", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, metric, fmt.Errorf("failed to reach agent %s: %w", a.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return 0, metric, fmt.Errorf("agent %s returned status %d: %s", a.url, resp.StatusCode, bytes.TrimSpace(out))
	}

	var answer struct {
		Move     int `json:"move"`
		Episodes int `json:"episodes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return 0, metric, fmt.Errorf("failed to decode move from agent %s: %w", a.url, err)
	}
	if !slices.Contains(a.board.LegalMoves(state), answer.Move) {
		return 0, metric, fmt.Errorf("agent %s returned illegal move %d", a.url, answer.Move)
	}
	metric.Episodes = answer.Episodes
	return answer.Move, metric, nil
}
