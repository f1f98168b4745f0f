package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/foundry/internal/catalog"
	"github.com/harrison/foundry/internal/config"
	"github.com/harrison/foundry/internal/export"
	"github.com/harrison/foundry/internal/store"
)

// NewExportCommand creates and returns the export subcommand
func NewExportCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Export a finished recommendation as Markdown and HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.ExportDir
			}
			return runExport(cmd.OutOrStdout(), cfg.DBPath, outDir, args[0])
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory (default from config)")

	return cmd
}

func runExport(out io.Writer, dbPath, outDir, sessionID string) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	session, err := st.Load(context.Background(), sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("no session found for %q", sessionID)
	}
	if session.Recommendation == nil {
		return fmt.Errorf("session %s has no recommendation yet; finish the interview first", sessionID)
	}

	tmpl, ok := cat.TemplateByID(session.Recommendation.AgentType)
	if !ok {
		return fmt.Errorf("recommended template %q not in catalog", session.Recommendation.AgentType)
	}

	paths, err := export.WriteFiles(outDir, sessionID, session.Recommendation, session.Requirements, tmpl)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintf(out, "Wrote %s\n", path)
	}
	return nil
}
