package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wanderpack/packages-cli/internal/core"
	"github.com/wanderpack/packages-cli/internal/output"
)

func SearchCmd() *cobra.Command {
	var req core.SearchRequest
	var mood, transport string
	var compact bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for holiday packages across destinations",
		Example: `  packages search --budget 500
  packages search --mood sun --nights 7 --budget 800
  packages search --to BCN --adults 2 --relax-budget
  packages search --budget 600 --mode hybrid --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Mood = core.Mood(mood)
			req.TransportType = core.TransportType(transport)

			cfg := loadConfig(cmd)
			logger := buildLogger(cmd)
			orch, err := buildOrchestrator(cfg, logger, cacheHooks{})
			if err != nil {
				output.JSONError("configuration error", err.Error())
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := orch.Search(ctx, req)
			if err != nil {
				output.JSONError("search failed", err.Error())
				return nil
			}
			if compact {
				return output.JSONCompact(result)
			}
			return output.JSON(result)
		},
	}

	cmd.Flags().StringVar(&req.Origin, "from", "", "Origin city code (default LON)")
	cmd.Flags().StringVar(&req.Destination, "to", "", "Restrict to one destination IATA code")
	cmd.Flags().IntVar(&req.Nights, "nights", 0, "Trip length in nights (default 4)")
	cmd.Flags().IntVar(&req.Adults, "adults", 0, "Number of adults (default 2)")
	cmd.Flags().IntVar(&req.MaxBudget, "budget", 0, "Maximum total price in GBP, 0 for unbounded")
	cmd.Flags().StringVar(&mood, "mood", "", "Destination mood: sun, city, romantic, adventure, chill, random")
	cmd.Flags().StringVar(&transport, "transport", "", "Transport type: flight, train, any")
	cmd.Flags().BoolVar(&req.RelaxBudget, "relax-budget", false, "Rank everything by price, ignore the budget cap")
	cmd.Flags().BoolVar(&req.RelaxMood, "relax-mood", false, "Widen the search to the full destination pool")
	cmd.Flags().BoolVar(&compact, "compact", false, "Single-line JSON output")

	return cmd
}
