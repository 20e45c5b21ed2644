package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// AgentConfig describes one player of an experiment.
type AgentConfig struct {
	ID         int
	Strategy   string // minimax, ismcts or random
	Goroutines int
	Budget     time.Duration
	MaxDepth   int
	Cutoff     int
}

type GameRecord struct {
	ID   int
	Red  int // AgentConfig.ID
	Blue int // AgentConfig.ID
	Seed uint64
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// MatchupSummary scores one pairing over all its games. A win counts one
// point and a draw half.
type MatchupSummary struct {
	Red       int // AgentConfig.ID
	Blue      int // AgentConfig.ID
	Games     int
	RedScore  float64
	BlueScore float64
	MeanMoves float64
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped directory for experiment name under root.
func NewWriter(root, name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	header := []string{"id", "strategy", "goroutines", "budget", "max_depth", "cutoff"}
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			config.Strategy,
			strconv.Itoa(config.Goroutines),
			config.Budget.String(),
			strconv.Itoa(config.MaxDepth),
			strconv.Itoa(config.Cutoff),
		})
	}
	return w.write("agent_configs.csv", header, rows)
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	header := []string{"id", "red", "blue", "seed", "winner", "reason", "start_time", "end_time", "duration", "total_moves", "fallbacks"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Red),
			strconv.Itoa(record.Blue),
			strconv.FormatUint(record.Seed, 10),
			record.Winner,
			record.Reason,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
			strconv.Itoa(record.Fallbacks),
		})
	}
	return w.write("game_records.csv", header, rows)
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	header := []string{"game", "step", "side", "move", "strategy", "duration", "depth", "nodes", "episodes", "full_playouts"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			record.Side,
			record.Move,
			record.Strategy,
			record.Duration.String(),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Episodes),
			strconv.Itoa(record.FullPlayouts),
		})
	}
	return w.write("move_records.csv", header, rows)
}

func (w *Writer) WriteSummaries(summaries []MatchupSummary) error {
	header := []string{"red", "blue", "games", "red_score", "blue_score", "mean_moves"}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			strconv.Itoa(s.Red),
			strconv.Itoa(s.Blue),
			strconv.Itoa(s.Games),
			strconv.FormatFloat(s.RedScore, 'f', 1, 64),
			strconv.FormatFloat(s.BlueScore, 'f', 1, 64),
			strconv.FormatFloat(s.MeanMoves, 'f', 2, 64),
		})
	}
	return w.write("summaries.csv", header, rows)
}

func (w *Writer) write(name string, header []string, rows [][]string) (err error) {
	// Create a file
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", name, cerr)
		}
	}()

	writer := csv.NewWriter(f)

	// Write header
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}

	// Write each row
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}
