package main

import (
	"encoding/csv"
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"secretsanta/internal/link"
	"secretsanta/internal/match"
	"secretsanta/internal/verify"
)

// verifyCmd re-checks an existing assignments CSV against the config
var verifyCmd = &cobra.Command{
	Use:   "verify [assignments.csv]",
	Short: "Verify an assignments CSV against the configured constraints",
	Long: `Decodes every reveal link in the CSV back to its assignment and runs the
full verification pass: bijection over the configured participants, no
self-assignments, no forbidden pairs, and no reciprocal pairs when those
are disallowed.

The verifier trusts nothing about the file's origin, so this works on any
assignments CSV, not just ones this tool generated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := cfg.Output.CSVPath
	if len(args) == 1 {
		path = args[0]
	}

	mapping, err := readMapping(path)
	if err != nil {
		return err
	}
	logger.Debug("recovered mapping from csv", zap.String("path", path), zap.Int("rows", len(mapping)))

	if err := verify.Verify(mapping, cfg.Participants, verify.Options{
		Forbidden:       match.NewPairSet(cfg.ForbiddenPairs),
		AllowReciprocal: cfg.AllowReciprocal,
	}); err != nil {
		return err
	}

	summary := verify.Summarize(mapping)
	fmt.Printf("Verification passed: %d givers, %d recipients covered\n",
		summary.Givers, summary.Recipients)
	return nil
}

// readMapping decodes the token embedded in each CSV row's URL and rebuilds
// the giver -> recipient mapping.
func readMapping(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 || len(records[0]) != 2 || records[0][0] != "giver" || records[0][1] != "url" {
		return nil, fmt.Errorf("%s: missing giver,url header", path)
	}

	mapping := make(map[string]string, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) != 2 {
			return nil, fmt.Errorf("%s row %d: want 2 columns, got %d", path, i+2, len(rec))
		}
		parsed, err := url.Parse(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: bad url: %w", path, i+2, err)
		}
		a, err := link.DecodeQuery(parsed.Query())
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", path, i+2, err)
		}
		if a.Giver != rec[0] {
			return nil, fmt.Errorf("%s row %d: giver column %q does not match link giver %q",
				path, i+2, rec[0], a.Giver)
		}
		// A map cannot hold two rows for one giver, so the duplicate-giver
		// check has to happen here, before the row is folded in.
		if _, dup := mapping[a.Giver]; dup {
			return nil, fmt.Errorf("%s row %d: duplicate giver %q", path, i+2, a.Giver)
		}
		mapping[a.Giver] = a.Recipient
	}
	return mapping, nil
}
