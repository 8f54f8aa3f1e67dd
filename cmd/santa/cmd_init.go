package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"secretsanta/internal/config"
)

// initCmd writes a starter config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Writes a starter configuration with example participants and one
forbidden pair to the --config path (default ` + config.DefaultPath + `).
Refuses to overwrite an existing file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or pass a different --config", configPath)
	}

	cfg := config.DefaultConfig()
	cfg.Participants = []string{"Alice", "Bob", "Carol", "Dave"}
	cfg.ForbiddenPairs = [][2]string{{"Alice", "Bob"}}

	if err := cfg.Save(configPath); err != nil {
		return err
	}
	fmt.Printf("Wrote starter config to %s\n", configPath)
	return nil
}
