package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/harrison/foundry/internal/config"
	"github.com/harrison/foundry/internal/store"
)

// NewSessionsCommand creates and returns the sessions subcommand
func NewSessionsCommand() *cobra.Command {
	var deleteID string

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List persisted interview sessions",
		Long: `List all persisted interview sessions, most recent first.

Resume one with: foundry interview --resume <id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			return runSessions(cmd.OutOrStdout(), cfg.DBPath, deleteID)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&deleteID, "delete", "", "delete the session with the given id")

	return cmd
}

func runSessions(out io.Writer, dbPath, deleteID string) error {
	st, err := store.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	if deleteID != "" {
		if err := st.Delete(ctx, deleteID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted session %s\n", deleteID)
		return nil
	}

	summaries, err := st.List(ctx)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No sessions yet. Start one with: foundry interview")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-20s  %-10s  %s\n", "ID", "AGENT", "STATE", "UPDATED")
	for _, s := range summaries {
		state := "in progress"
		if s.IsComplete {
			state = "complete"
		}
		name := s.AgentName
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(out, "%-36s  %-20s  %-10s  %s\n",
			s.ID, name, state, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
