package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective keep-dot set and abbreviation table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := GetConfig().Rules()
		out := cmd.OutOrStdout()

		if rulesJSON {
			return json.NewEncoder(out).Encode(struct {
				KeepDot       []string            `json:"keep_dot"`
				Abbreviations map[string][]string `json:"abbreviations"`
				Fingerprint   string              `json:"fingerprint"`
			}{rules.KeepDotList(), rules.Abbreviations, rules.Fingerprint()})
		}

		fmt.Fprintf(out, "Keep dot: %s\n", strings.Join(rules.KeepDotList(), ", "))
		fmt.Fprintln(out, "Abbreviations:")
		for _, key := range rules.AbbreviationKeys() {
			fmt.Fprintf(out, "  %-10s -> %s\n", key, strings.Join(rules.Abbreviations[key], " "))
		}
		fmt.Fprintf(out, "Fingerprint: %s\n", rules.Fingerprint())
		return nil
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false, "print rules as JSON")
	rootCmd.AddCommand(rulesCmd)
}
