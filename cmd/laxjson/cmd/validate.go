package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/laxjson/laxjson"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check JSON against RFC 8259 and print every violation found",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(args)
		if err != nil {
			return err
		}

		diags := laxjson.Validate(input)
		for _, d := range diags {
			fmt.Fprintf(os.Stdout, "%s:%d:%d: %s: %s\n", d.Kind, d.Line, d.Column, d.Severity, d.Message)
		}

		if laxjson.HasErrors(diags) {
			return fmt.Errorf("%d diagnostic(s) found", len(diags))
		}
		if len(diags) > 0 {
			log.Infof("valid JSON with %d warning(s)", len(diags))
		} else {
			log.Debug("valid JSON")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
