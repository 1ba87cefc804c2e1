package commands

import (
	"github.com/spf13/cobra"

	"github.com/wanderpack/packages-cli/internal/cache"
	"github.com/wanderpack/packages-cli/internal/output"
)

func ProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List and inspect registered providers",
	}
	cmd.AddCommand(providersListCmd())
	return cmd
}

func providersListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered providers and their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			reg := buildRegistry(cfg, cache.NewMemory(), cacheHooks{})
			return output.JSON(reg.Infos())
		},
	}
	return cmd
}
