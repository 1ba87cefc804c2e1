package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wanderpack/packages-cli/cmd/packages/commands"
)

func main() {
	root := &cobra.Command{
		Use:   "packages",
		Short: "Wanderpack package search – transport plus hotel, ranked by price",
		Long:  "A holiday package search CLI that fans out across European destinations, pairs the cheapest transport with a hotel for each, and returns budget-ranked packages as JSON.",
	}

	root.PersistentFlags().String("mode", "", "Provider mode: estimate, live, hybrid (default from config/env)")
	root.PersistentFlags().Bool("verbose", false, "Log orchestration progress to stderr")

	root.AddCommand(commands.SearchCmd())
	root.AddCommand(commands.DestinationsCmd())
	root.AddCommand(commands.ProvidersCmd())
	root.AddCommand(commands.DoctorCmd())
	root.AddCommand(commands.ServeCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print packages CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("packages v0.1.0")
		},
	}
}
