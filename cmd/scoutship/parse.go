package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/scoutship/pkg/dvw"
)

// newParseCmd builds the one-shot decoder command. Decoding itself
// cannot fail, so the only error exits are I/O.
func newParseCmd() *cobra.Command {
	var summaryOnly bool

	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Decode scout files and print them as JSON",
		Long: strings.TrimSpace(`
Decode one or more .dvw scout files and print each as pretty JSON.

Malformed sections never abort the decode: whatever could not be read
comes out empty and the rest of the match is still printed. The command
fails only when a file cannot be opened.
`),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			for _, path := range args {
				m, err := dvw.ParseFile(path)
				if err != nil {
					return fmt.Errorf("parse %s: %w", path, err)
				}
				if summaryOnly {
					if err := enc.Encode(m.Summary()); err != nil {
						return err
					}
					continue
				}
				if err := enc.Encode(m); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&summaryOnly, "summary", false, "print only the match summary")
	return cmd
}
