package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"secretsanta/internal/config"
	"secretsanta/internal/link"
	"secretsanta/internal/match"
	"secretsanta/internal/output"
	"secretsanta/internal/verify"
)

// generateCmd produces assignments and writes the reveal artifacts
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate assignments and write the CSV (and QR codes)",
	Long: `Loads the participant list and constraints from the config file, finds a
valid assignment via randomized backtracking, verifies it independently,
and writes one reveal link per giver.

Nothing is written unless verification passes; a failed run leaves no
partial output behind.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return generate(cfg, logger)
}

// generate runs the full pipeline: validate -> match -> verify -> encode ->
// write. Split from the cobra handler so tests can drive it with a crafted
// config.
func generate(cfg *config.Config, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.New().String()
	seed := cfg.Matcher.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Info("generating assignments",
		zap.String("run_id", runID),
		zap.Int("participants", len(cfg.Participants)),
		zap.Int("forbidden_pairs", len(cfg.ForbiddenPairs)),
		zap.Bool("allow_reciprocal", cfg.AllowReciprocal))

	forbidden := match.NewPairSet(cfg.ForbiddenPairs)

	// Each search is exhaustive, so extra attempts only re-roll the
	// randomness; max_attempts defaults to 1.
	var lastErr error
	for attempt := 1; attempt <= cfg.Matcher.MaxAttempts; attempt++ {
		mapping, err := match.Match(cfg.Participants, forbidden, cfg.AllowReciprocal, rng)
		if err == nil {
			return finish(cfg, logger, runID, mapping, forbidden)
		}
		if !errors.Is(err, match.ErrUnsatisfiable) {
			return err
		}
		logger.Debug("search exhausted", zap.Int("attempt", attempt), zap.String("run_id", runID))
		lastErr = err
	}
	return lastErr
}

func finish(cfg *config.Config, logger *zap.Logger, runID string,
	mapping map[string]string, forbidden match.PairSet) error {

	if err := verify.Verify(mapping, cfg.Participants, verify.Options{
		Forbidden:       forbidden,
		AllowReciprocal: cfg.AllowReciprocal,
	}); err != nil {
		// The matcher should never hand over an invalid mapping; this is a
		// logic defect and the run must not write output.
		return fmt.Errorf("generated mapping failed verification: %w", err)
	}

	rows := make([]output.Row, 0, len(cfg.Participants))
	for _, giver := range cfg.Participants {
		url, err := link.RevealURL(cfg.BaseURL, link.Assignment{
			Giver:     giver,
			Recipient: mapping[giver],
		})
		if err != nil {
			return err
		}
		rows = append(rows, output.Row{Giver: giver, URL: url})
	}

	if err := output.WriteCSV(cfg.Output.CSVPath, rows); err != nil {
		return err
	}
	if cfg.Output.QREnabled {
		if err := output.WriteQRCodes(cfg.Output.QRDir, rows, cfg.Output.QRSize); err != nil {
			return err
		}
	}

	summary := verify.Summarize(mapping)
	logger.Info("run complete",
		zap.String("run_id", runID),
		zap.Int("givers", summary.Givers),
		zap.Int("recipients", summary.Recipients),
		zap.String("csv", cfg.Output.CSVPath))

	fmt.Printf("Verification passed: %d givers, %d recipients covered (run %s)\n",
		summary.Givers, summary.Recipients, runID)
	fmt.Printf("Wrote %s\n", cfg.Output.CSVPath)
	if cfg.Output.QREnabled {
		fmt.Printf("Wrote %d QR codes to %s\n", len(rows), cfg.Output.QRDir)
	}
	return nil
}
