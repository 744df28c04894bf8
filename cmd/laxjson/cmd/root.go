package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/laxjson/laxjson"
)

var (
	rootCmd = &cobra.Command{
		Use:          "laxjson",
		Short:        "laxjson",
		SilenceUsage: true,
		Long:         `CLI tool for repairing malformed JSON and validating strict JSON against RFC 8259.`,
	}

	configPath string
	debug      bool
	log        = logrus.New()
)

// Execute executes the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".laxjsonrc.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	cobra.OnInitialize(func() {
		if debug {
			log.SetLevel(logrus.DebugLevel)
			laxjson.SetDebug(true)
		}
	})
	return rootCmd.Execute()
}
