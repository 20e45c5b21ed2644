package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "strategy")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(root, "strategy"), filepath.Dir(w.Dir()))

	t.Run("agent configs", func(t *testing.T) {
		err := w.WriteAgentConfigs([]AgentConfig{
			{ID: 1, Strategy: "minimax", Goroutines: 4, Budget: 50 * time.Millisecond, MaxDepth: 64},
			{ID: 2, Strategy: "ismcts", Goroutines: 4, Budget: 50 * time.Millisecond, Cutoff: 40},
		})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, []string{"id", "strategy", "goroutines", "budget", "max_depth", "cutoff"}, rows[0])
		require.Equal(t, []string{"2", "ismcts", "4", "50ms", "0", "40"}, rows[2])
	})

	t.Run("game records", func(t *testing.T) {
		start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		err := w.WriteGameRecords([]GameRecord{{
			ID: 1, Red: 1, Blue: 2, Seed: 99,
			GameMetric: GameMetric{Winner: "Blue", Reason: "flag captured", StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 87},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 2)
		require.Equal(t, []string{"1", "1", "2", "99", "Blue", "flag captured", "2024-01-02T03:04:05Z", "2024-01-02T03:04:06Z", "1s", "87", "0"}, rows[1])
	})

	t.Run("move records", func(t *testing.T) {
		err := w.WriteMoveRecords([]MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{Step: 1, Side: "Red", Move: "a4-a5", SearchMetric: SearchMetric{
				Strategy: "minimax", Duration: 20 * time.Millisecond, Depth: 3, Nodes: 1200,
			}},
		}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Equal(t, []string{"1", "1", "Red", "a4-a5", "minimax", "20ms", "3", "1200", "0", "0"}, rows[1])
	})

	t.Run("summaries", func(t *testing.T) {
		err := w.WriteSummaries([]MatchupSummary{{Red: 1, Blue: 2, Games: 4, RedScore: 2.5, BlueScore: 1.5, MeanMoves: 101.25}})
		require.NoError(t, err)

		rows := readCSV(t, filepath.Join(w.Dir(), "summaries.csv"))
		require.Equal(t, []string{"1", "2", "4", "2.5", "1.5", "101.25"}, rows[1])
	})

	t.Run("reporting file errors", func(t *testing.T) {
		gone, err := NewWriter(t.TempDir(), "budget")
		require.NoError(t, err)
		require.NoError(t, os.RemoveAll(gone.Dir()))

		require.Error(t, gone.WriteSummaries([]MatchupSummary{{Red: 1, Blue: 2}}))
	})
}

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start("minimax", 4, time.Second)
	c.AddNodes(10)
	c.AddNodes(5)
	c.SetDepth(3)
	c.AddEpisode()
	c.AddFullPlayout()

	metric := c.Complete()

	require.Equal(t, "minimax", metric.Strategy)
	require.Equal(t, 4, metric.Goroutines)
	require.Equal(t, time.Second, metric.Budget)
	require.Equal(t, 15, metric.Nodes)
	require.Equal(t, 3, metric.Depth)
	require.Equal(t, 1, metric.Episodes)
	require.Equal(t, 1, metric.FullPlayouts)

	c.Start("ismcts", 1, time.Second)
	require.Zero(t, c.Complete().Nodes, "Start resets the counters")

	require.Equal(t, SearchMetric{}, NewDummyCollector().Complete())
}
