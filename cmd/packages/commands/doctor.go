package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wanderpack/packages-cli/internal/cache"
	"github.com/wanderpack/packages-cli/internal/core"
	"github.com/wanderpack/packages-cli/internal/output"
)

func DoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration, credentials, and provider health",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig(cmd)
			reg := buildRegistry(cfg, cache.NewMemory(), cacheHooks{})
			infos := reg.Infos()

			active := 0
			var issues []string
			for _, p := range infos {
				switch p.Status {
				case "active":
					active++
				case "no_credentials":
					issues = append(issues, fmt.Sprintf("%s: missing credentials", p.Name))
				}
			}

			summary := fmt.Sprintf("%d/%d providers active (mode=%s)", active, len(infos), cfg.Mode)
			if len(issues) > 0 {
				summary += " | issues: " + strings.Join(issues, "; ")
			}
			if err := reg.Validate(); err != nil {
				summary += " | " + err.Error()
			}

			report := core.DoctorReport{
				Mode:      reg.Mode(),
				Providers: infos,
				Healthy:   active > 0 && reg.Validate() == nil,
				Summary:   summary,
			}
			return output.JSON(report)
		},
	}
	return cmd
}
