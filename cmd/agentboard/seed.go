package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/agentboard/internal/backlog"
)

// seedCmd inserts a small demo backlog so the dashboard has something to
// show in store mode.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo tasks into the local backlog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dbPath, err := defaultDBPath(cfg)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := backlog.NewSQLiteStore(ctx, dbPath)
			if err != nil {
				return fmt.Errorf("opening backlog store: %w", err)
			}
			defer store.Close()

			tasks := []*backlog.Task{
				{ID: "auth-1", Title: "Fix OAuth token refresh", Priority: 0, AgentRole: "coder"},
				{ID: "auth-2", Title: "Add login rate limiting", Priority: 2, AgentRole: "coder"},
				{ID: "web-1", Title: "Ship maintenance banner", Priority: 1, AgentRole: "coder"},
				{ID: "web-2", Title: "Review banner copy", Priority: 3, AgentRole: "reviewer", BlockedBy: []string{"web-1"}},
				{ID: "infra-1", Title: "Rotate deploy keys", Priority: 1, AgentRole: "operator"},
			}

			for _, task := range tasks {
				if err := store.SaveTask(ctx, task); err != nil {
					return fmt.Errorf("seeding %s: %w", task.ID, err)
				}
			}

			open, err := store.OpenTasks(ctx)
			if err != nil {
				return err
			}
			if err := backlog.ValidateBlockers(open); err != nil {
				return err
			}

			fmt.Printf("Seeded %d tasks into %s\n", len(tasks), dbPath)
			return nil
		},
	}
}
