package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for foundry
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foundry",
		Short: "Interview-driven agent blueprint recommender",
		Long: `Foundry walks you through a staged interview about the agent you want
to build, derives a structured requirements profile from your answers, and
scores it against a catalog of agent archetypes.

The result is a ranked, explainable recommendation: the best-fitting
archetype, the capability tags it matched and missed, a confidence score,
and a generated implementation plan.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.PersistentFlags().String("config", "", "path to config file (default .foundry/config.yaml)")

	cmd.AddCommand(NewInterviewCommand())
	cmd.AddCommand(NewSessionsCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewExportCommand())

	return cmd
}
