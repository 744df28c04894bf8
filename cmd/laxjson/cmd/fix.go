package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"

	"github.com/laxjson/laxjson"
)

var (
	fixOutput    string
	fixShowDiff  bool
	fixDebugTree bool

	fixCmd = &cobra.Command{
		Use:   "fix [file]",
		Short: "Repair malformed JSON and print canonical, valid JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(args)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			result, err := laxjson.Fix(input, cfg)
			if err != nil {
				log.WithError(err).Error("internal invariant violation")
				return err
			}

			out := os.Stdout
			if fixOutput != "" {
				f, err := os.Create(fixOutput)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			if _, err := out.Write(result.Text); err != nil {
				return err
			}
			if fixOutput != "" {
				out.WriteString("\n")
			}

			if fixShowDiff {
				for _, msg := range result.Fixes {
					log.Info(msg)
				}
			}
			if fixDebugTree {
				tree, err := laxjson.Parse(input)
				if err == nil {
					repr.New(os.Stderr).Println(tree)
				}
			}
			if !result.WasFixed {
				log.Debug("input already valid, no repairs applied")
			}
			return nil
		},
	}
)

func init() {
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "write result to file instead of stdout")
	fixCmd.Flags().BoolVar(&fixShowDiff, "show-fixes", false, "log every repair applied")
	fixCmd.Flags().BoolVar(&fixDebugTree, "debug-tree", false, "print the parsed tree to stderr")
	rootCmd.AddCommand(fixCmd)
}

// readInput reads the single positional file argument, or stdin when
// none is given.
func readInput(args []string) ([]byte, error) {
	if len(args) > 1 {
		return nil, errors.New("expected at most one file argument")
	}
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}
