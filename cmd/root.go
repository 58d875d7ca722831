package cmd

import (
	"fmt"
	"os"

	"acc-portal/config"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "acc",
	Short: "African Cybersecurity Consortium portal",
	Long: `acc runs the consortium website: the JSON API, the public pages and
the admin console, plus the database tooling around them.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./acc.yaml when present)")
}

func loadConfig() (config.Config, error) {
	return config.Load(cfgFile)
}
