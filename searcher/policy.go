package searcher

import "math"

// Hyperparameters for ISMCTS

const CSquared = 2.0 // Exploration constant

// Rewards lie in [Loss, Win]; a draw is worth zero
const Win = 1.0
const Loss = -Win

// Rollouts cut off before the end score tanh(evaluation/evalScale)
const evalScale = 400.0

// ucb is UCB1 with the parent visit count replaced by the number of times the
// child was available for selection.
func ucb(rewards float64, visits, avails int) float64 {
	// Prioritize unexplored nodes
	if visits == 0 {
		return math.Inf(1)
	}
	return rewards/float64(visits) + math.Sqrt(CSquared*math.Log(float64(max(avails, 1)))/float64(visits))
}

// squash maps a static evaluation onto the reward range.
func squash(score int) float64 {
	return math.Tanh(float64(score) / evalScale)
}
