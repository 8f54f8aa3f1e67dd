package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"secretsanta/internal/link"
)

// decodeCmd decodes a reveal token or URL for spot-checking links
var decodeCmd = &cobra.Command{
	Use:   "decode [token-or-url]",
	Short: "Decode a reveal token or URL and print the assignment",
	Long: `Decodes a bare token, a full reveal URL (?data=...), or the legacy
two-parameter form (?giver=...&recipient=...) and prints the pairing.

This reveals the pairing on the terminal; it is an organizer tool for
checking links, not something to run where participants can see.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	a, err := decodeArg(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("giver:     %s\nrecipient: %s\n", a.Giver, a.Recipient)
	return nil
}

func decodeArg(arg string) (link.Assignment, error) {
	if strings.Contains(arg, "://") || strings.Contains(arg, "?") {
		parsed, err := url.Parse(arg)
		if err != nil {
			return link.Assignment{}, fmt.Errorf("bad url: %w", err)
		}
		return link.DecodeQuery(parsed.Query())
	}
	return link.Decode(arg)
}
