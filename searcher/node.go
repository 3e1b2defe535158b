package searcher

import (
	"slices"

	"uctbot/game"
)

const (
	rootID   = 0
	noParent = -1
)

// node is a vertex of the search tree. Nodes live in the tree's arena and refer to each
// other by index, the parent link is never an owner.
type node[M comparable] struct {
	parent   int
	move     M           // Move that led here from parent, zero for the root
	player   game.Player // Player to move in this node's state
	depth    int
	untried  []M   // Legal moves not expanded yet
	children []int // In expansion order
	visits   int
	wins     float64
}

func (n *node[M]) isExpandable() bool {
	return len(n.untried) > 0
}

func (n *node[M]) isTerminal() bool {
	return len(n.untried) == 0 && len(n.children) == 0
}

func (n *node[M]) winRate() (float64, bool) {
	if n.visits == 0 {
		return 0, false
	}
	return n.wins / float64(n.visits), true
}

type tree[M comparable] struct {
	nodes    []node[M]
	maxDepth int
}

func newTree[M comparable](player game.Player, moves []M) *tree[M] {
	return &tree[M]{
		nodes: []node[M]{{
			parent:  noParent,
			player:  player,
			untried: slices.Clone(moves),
		}},
	}
}

// at returns the node with the given id. The pointer is only valid until the next addChild.
func (t *tree[M]) at(id int) *node[M] {
	return &t.nodes[id]
}

func (t *tree[M]) root() *node[M] {
	return t.at(rootID)
}

func (t *tree[M]) size() int {
	return len(t.nodes)
}

func (t *tree[M]) addChild(parent int, move M, player game.Player, moves []M) int {
	id := len(t.nodes)
	depth := t.nodes[parent].depth + 1
	t.nodes = append(t.nodes, node[M]{
		parent:  parent,
		move:    move,
		player:  player,
		depth:   depth,
		untried: slices.Clone(moves),
	})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	t.maxDepth = max(t.maxDepth, depth)
	return id
}

// child returns the id of the child reached by move.
func (t *tree[M]) child(parent int, move M) (int, bool) {
	for _, id := range t.nodes[parent].children {
		if t.nodes[id].move == move {
			return id, true
		}
	}
	return 0, false
}

// backup records one simulation from id up to the root inclusive. The reward is from the
// searching player's perspective at every node.
func (t *tree[M]) backup(id int, reward float64) {
	for id != noParent {
		n := t.at(id)
		n.visits++
		n.wins += reward
		id = n.parent
	}
}

// bestChild returns the root child with the highest win rate, the first one on ties.
func (t *tree[M]) bestChild() (int, bool) {
	best := -1
	bestRate := -1.0
	for _, id := range t.root().children {
		rate, ok := t.at(id).winRate()
		if !ok {
			continue
		}
		if rate > bestRate {
			best = id
			bestRate = rate
		}
	}
	return best, best != -1
}
