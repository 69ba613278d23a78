package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/briangreenhill/fitcoach/internal/config"
	"github.com/briangreenhill/fitcoach/internal/plan"
	"github.com/briangreenhill/fitcoach/internal/store"
)

type planReader interface {
	GetPlan(ctx context.Context, id uuid.UUID) (store.Plan, error)
	ListRecentPlans(ctx context.Context, limit int32) ([]store.Plan, error)
}

func newHistoryCmd(root *rootOptions) *cobra.Command {
	var limit int32
	cmd := &cobra.Command{
		Use:   "history [plan-id]",
		Short: "List archived plans, or print one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.HasDatabase() {
				return errors.New("DATABASE_URL is required for history")
			}
			pool, err := pgxpool.New(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer pool.Close()

			return runHistory(cmd.Context(), cmd.OutOrStdout(), root, store.New(pool), args, limit)
		},
	}
	cmd.Flags().Int32Var(&limit, "limit", 20, "number of recent plans to list")
	return cmd
}

type historyItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Goal      string `json:"goal,omitempty"`
	CreatedAt string `json:"createdAt"`
}

func runHistory(ctx context.Context, w io.Writer, root *rootOptions, r planReader, args []string, limit int32) error {
	if len(args) == 1 {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid plan id %q: %w", args[0], err)
		}
		p, err := r.GetPlan(ctx, id)
		if err != nil {
			return fmt.Errorf("get plan %s: %w", id, err)
		}
		return root.printSections(w, plan.Sections{
			Workout:    p.Workout,
			Diet:       p.Diet,
			Tips:       p.Tips,
			Motivation: p.Motivation,
		})
	}

	if limit < 1 {
		return errors.New("limit must be positive")
	}
	plans, err := r.ListRecentPlans(ctx, limit)
	if err != nil {
		return fmt.Errorf("list plans: %w", err)
	}

	items := make([]historyItem, 0, len(plans))
	for _, p := range plans {
		items = append(items, historyItem{
			ID:        p.ID.String(),
			Name:      p.Name,
			Goal:      p.Goal.String,
			CreatedAt: p.CreatedAt.Time.Format("2006-01-02 15:04"),
		})
	}

	switch root.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case "text":
		for _, it := range items {
			if _, err := fmt.Fprintf(w, "%s  %s  %-20s %s\n", it.ID, it.CreatedAt, it.Name, it.Goal); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", root.output)
	}
}
