package experiments

import (
	"context"
	"fmt"
	"time"

	"stratego/belief"
	"stratego/engine"
	"stratego/experiments/metrics"
	"stratego/game"
	"stratego/searcher"
	"stratego/searcher/agent"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Options are shared by every experiment.
type Options struct {
	NumGames int // Per match up
	Budget   time.Duration
	MaxMoves int
	Seed     uint64
	Weights  belief.Weights
	Dir      string
}

// RunStrategyExperiment pits minimax against ISMCTS with equal budgets,
// each playing both colours.
func RunStrategyExperiment(ctx context.Context, opts Options) error {
	configs := []metrics.AgentConfig{
		{ID: 1, Strategy: searcher.StrategyMinimax, Goroutines: searcher.DefaultGoroutines, Budget: opts.Budget, MaxDepth: searcher.DefaultMaxDepth},
		{ID: 2, Strategy: searcher.StrategyISMCTS, Goroutines: searcher.DefaultGoroutines, Budget: opts.Budget, Cutoff: searcher.DefaultCutoff},
		{ID: 3, Strategy: "random"},
	}
	matchUps := [][]metrics.AgentConfig{
		{configs[0], configs[1]},
		{configs[1], configs[0]},
		{configs[0], configs[2]},
		{configs[1], configs[2]},
	}
	return runExperiment(ctx, "strategy", configs, matchUps, opts)
}

// RunBudgetExperiment pairs minimax agents with growing budgets against a
// baseline with the smallest one.
func RunBudgetExperiment(ctx context.Context, opts Options) error {
	baseline := metrics.AgentConfig{ID: 0, Strategy: searcher.StrategyMinimax, Goroutines: searcher.DefaultGoroutines, Budget: opts.Budget / 4, MaxDepth: searcher.DefaultMaxDepth}
	configs := []metrics.AgentConfig{baseline}
	for i, factor := range []time.Duration{1, 2, 4} {
		config := baseline
		config.ID = i + 1
		config.Budget = baseline.Budget * factor
		configs = append(configs, config)
	}

	// Each matchup pairs the baseline agent against a larger budget
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment(ctx, "budget", configs, matchUps, opts)
}

// RunParallelizationExperiment measures how root parallel minimax scales with
// goroutines. Both players share a config for similar game length.
func RunParallelizationExperiment(ctx context.Context, opts Options) error {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8, 16} {
		config := metrics.AgentConfig{ID: i + 1, Strategy: searcher.StrategyMinimax, Goroutines: goroutines, Budget: opts.Budget, MaxDepth: searcher.DefaultMaxDepth}
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return runExperiment(ctx, "parallelization", configs, matchUps, opts)
}

func runExperiment(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, opts Options) error {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := []metrics.MatchupSummary{}
	rng := rand.New(rand.NewSource(opts.Seed))

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		red, blue := matchup[0], matchup[1]
		log.Info().Msgf("starting matchup %d of %d between red=%+v and blue=%+v...", mi+1, len(matchUps), red, blue)

		redScores := make([]float64, 0, opts.NumGames)
		lengths := make([]float64, 0, opts.NumGames)
		for i := 0; i < opts.NumGames; i++ {
			seed := rng.Uint64()
			result, err := runGame(ctx, red, blue, seed, opts)
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Red:        red.ID,
				Blue:       blue.ID,
				Seed:       seed,
				GameMetric: result.Game,
			})
			for _, mm := range result.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			redScores = append(redScores, redScore(result.Status))
			lengths = append(lengths, float64(result.Game.TotalMoves))

			log.Info().Msgf("completed matchup %d of %d game %d with %s", mi+1, len(matchUps), i+1, result.Status)
		}
		summaries = append(summaries, summarize(red.ID, blue.ID, redScores, lengths))
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)
	return store(name, configs, gameRecords, moveRecords, summaries, opts.Dir)
}

func store(name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord, summaries []metrics.MatchupSummary, dir string) error {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	if err := writer.WriteSummaries(summaries); err != nil {
		return fmt.Errorf("failed to write summaries: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return nil
}

// runGame plays a single game from random setups drawn from seed.
func runGame(ctx context.Context, red, blue metrics.AgentConfig, seed uint64, opts Options) (engine.Result, error) {
	rng := rand.New(rand.NewSource(seed))
	state, err := game.NewGame(game.RandomSetup(rng), game.RandomSetup(rng))
	if err != nil {
		return engine.Result{}, err
	}
	redAgent, err := NewAgent(red, game.Red, state, seed, opts.Weights)
	if err != nil {
		return engine.Result{}, err
	}
	blueAgent, err := NewAgent(blue, game.Blue, state, seed+1, opts.Weights)
	if err != nil {
		return engine.Result{}, err
	}
	return engine.NewLocal(state, redAgent, blueAgent, opts.MaxMoves).Run(ctx)
}

// NewAgent builds the agent described by config to play side from state.
func NewAgent(config metrics.AgentConfig, side game.Side, state *game.GameState, seed uint64, weights belief.Weights) (agent.Agent, error) {
	if config.Strategy == "random" {
		return agent.NewRandomAgent(seed), nil
	}

	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	s, err := searcher.New(config.Strategy, options...)
	if err != nil {
		return nil, err
	}
	return agent.NewSession(side, state, s, weights, config.Budget), nil
}

func redScore(status game.Status) float64 {
	switch {
	case status.Outcome == game.Drawn:
		return 0.5
	case status.Winner == game.Red:
		return 1
	default:
		return 0
	}
}

func summarize(red, blue int, redScores, lengths []float64) metrics.MatchupSummary {
	games := len(redScores)
	s := metrics.MatchupSummary{Red: red, Blue: blue, Games: games}
	if games == 0 {
		return s
	}
	s.RedScore = floats.Sum(redScores)
	s.BlueScore = float64(games) - s.RedScore
	s.MeanMoves = floats.Sum(lengths) / float64(len(lengths))
	return s
}
