package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"stratego/config"
	"stratego/engine"
	"stratego/experiments"
	"stratego/game"
	"stratego/searcher"
	"stratego/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	experiment := flag.String("experiment", "play", "One of play, strategy, budget or parallelization")
	numGames := flag.Int("games", 10, "Number of games per matchup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := experiments.Options{
		NumGames: *numGames,
		Budget:   cfg.SearchBudget,
		MaxMoves: cfg.MaxMoves,
		Seed:     cfg.Seed,
		Weights:  cfg.Weights(),
		Dir:      cfg.ExperimentDir,
	}

	switch *experiment {
	case "play":
		err = play(ctx, cfg)
	case "strategy":
		err = experiments.RunStrategyExperiment(ctx, opts)
	case "budget":
		err = experiments.RunBudgetExperiment(ctx, opts)
	case "parallelization":
		err = experiments.RunParallelizationExperiment(ctx, opts)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *experiment)
	}
}

// play runs one self-play game with the configured searcher on both sides.
func play(ctx context.Context, cfg config.Config) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	state, err := game.NewGame(game.RandomSetup(rng), game.RandomSetup(rng))
	if err != nil {
		return err
	}

	var sessions [2]agent.Agent
	for _, side := range []game.Side{game.Red, game.Blue} {
		s, err := cfg.NewSearcher(searcher.WithSeed(cfg.Seed + uint64(side)))
		if err != nil {
			return err
		}
		sessions[side] = agent.NewSession(side, state, s, cfg.Weights(), cfg.SearchBudget)
	}

	result, err := engine.NewLocal(state, sessions[game.Red], sessions[game.Blue], cfg.MaxMoves).Run(ctx)
	if err != nil {
		return err
	}
	log.Info().
		Str("result", result.Status.String()).
		Int("moves", result.Game.TotalMoves).
		Dur("duration", result.Game.Duration).
		Msg("game finished")
	return nil
}
