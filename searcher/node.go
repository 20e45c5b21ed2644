package searcher

import (
	"math"
	"sync"

	"stratego/game"
)

// node is a node of the information-set tree. Children are keyed by move
// because different determinizations offer different moves at the same node.
type node struct {
	sync.Mutex
	parent   *node
	move     game.Move // Move leading here
	mover    game.Side // Side that played move
	children []*node
	index    map[game.Move]int
	rewards  float64
	visits   int
	avails   int // Selections at the parent in which move was legal
}

func newNode(parent *node, move game.Move, mover game.Side) *node {
	return &node{
		parent: parent,
		move:   move,
		mover:  mover,
		index:  make(map[game.Move]int),
	}
}

// selectOrExpand descends one level given the legal moves of the current
// determinization. It expands the first untried move in generation order or,
// when every legal move has a child, picks the child with the highest UCB.
// The chosen child receives a virtual loss. expanded reports a new child.
func (n *node) selectOrExpand(moves []game.Move, mover game.Side) (child *node, expanded bool) {
	n.Lock()
	defer n.Unlock()

	var legal []*node
	for _, m := range moves {
		i, ok := n.index[m]
		if !ok {
			child = newNode(n, m, mover)
			n.index[m] = len(n.children)
			n.children = append(n.children, child)
			child.addAvail()
			child.applyLoss()
			return child, true
		}
		legal = append(legal, n.children[i])
	}

	best := math.Inf(-1)
	for _, c := range legal {
		c.addAvail()
		if score := c.score(); score > best {
			best = score
			child = c
		}
	}
	child.applyLoss()
	return child, false
}

func (n *node) addAvail() {
	n.Lock()
	defer n.Unlock()

	n.avails++
}

func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()

	n.rewards += Loss
	n.visits++
}

func (n *node) score() float64 {
	n.Lock()
	defer n.Unlock()

	return ucb(n.rewards, n.visits, n.avails)
}

// backup undoes the virtual loss and credits reward, given from Red's
// perspective, to the side that moved into n. It returns the parent.
func (n *node) backup(reward float64) *node {
	n.Lock()
	defer n.Unlock()

	if n.parent != nil { // Non-root node
		n.rewards -= Loss
		n.visits--
	}
	if n.mover == game.Blue {
		reward = -reward
	}
	n.rewards += reward
	n.visits++
	return n.parent
}

func (n *node) Visits() int {
	n.Lock()
	defer n.Unlock()

	return n.visits
}

// bestMove returns the most visited child's move. Children are stored in
// expansion order, which follows generation order at the root.
func (n *node) bestMove(moves []game.Move) (game.Move, bool) {
	n.Lock()
	defer n.Unlock()

	found := false
	var best game.Move
	most := 0
	for _, m := range moves {
		i, ok := n.index[m]
		if !ok {
			continue
		}
		if v := n.children[i].Visits(); v > most {
			most = v
			best = m
			found = true
		}
	}
	return best, found
}
