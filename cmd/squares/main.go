package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	debug      bool
	gameID     string
	league     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "squares",
		Short:         "Fair-random assignment and settlement engine for squares pools.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to config file.")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logs.")
	root.PersistentFlags().StringVar(&flags.gameID, "game", "local", "Game identifier.")
	root.PersistentFlags().StringVar(&flags.league, "league", "", "League code, e.g. nfl, nba, eng.1.")

	root.AddCommand(
		newSchedulesCmd(),
		newAxesCmd(flags),
		newPayoutsCmd(flags),
		newRollCmd(flags),
		newPendingCmd(flags),
	)
	return root
}
