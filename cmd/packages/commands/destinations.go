package commands

import (
	"github.com/spf13/cobra"

	"github.com/wanderpack/packages-cli/internal/core"
	"github.com/wanderpack/packages-cli/internal/destinations"
	"github.com/wanderpack/packages-cli/internal/output"
)

func DestinationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "destinations",
		Short: "Inspect the destination pool",
	}
	cmd.AddCommand(destinationsListCmd())
	cmd.AddCommand(moodsCmd())
	return cmd
}

func destinationsListCmd() *cobra.Command {
	var mood string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List destinations, optionally filtered by mood",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := destinations.NewCatalog()
			m := core.Mood(mood)
			if m == "" {
				m = core.MoodRandom
			}
			return output.JSON(map[string]any{
				"mood":         m,
				"destinations": catalog.Destinations(m),
			})
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "Mood filter: sun, city, romantic, adventure, chill, random")
	return cmd
}

func moodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moods",
		Short: "List the available mood categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return output.JSON(map[string]any{"moods": core.Moods()})
		},
	}
}
