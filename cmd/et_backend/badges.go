package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/expense_tracker_app/internal/core/services"
	"github.com/SscSPs/expense_tracker_app/internal/repositories/keyvalue"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/spf13/cobra"
)

func badgesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Inspect and repair achievement badges",
	}
	cmd.AddCommand(badgesCatalogCmd())
	cmd.AddCommand(badgesRecomputeCmd())
	return cmd
}

func badgesCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the badge catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := services.DefaultBadgeCatalog()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, def := range catalog {
				reqs := make([]string, len(def.Requirements))
				for i, r := range def.Requirements {
					reqs[i] = fmt.Sprintf("%s>=%s", r.Metric, r.Threshold.String())
				}
				fmt.Fprintf(out, "%-3s %-18s %-32s %s\n", def.ID, def.Name, strings.Join(reqs, ","), def.Condition)
			}
			return nil
		},
	}
}

func badgesRecomputeCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Rebuild a user's badges from the catalog",
		Long: `Rebuild a user's stored badges from the current catalog and re-evaluate them.
Badges the user already unlocked stay unlocked.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			store, closeStore, err := openStore(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			container := services.NewServiceContainer(cfg, keyvalue.NewRepositoryProvider(store), &utils.PosthogClientWrapper{})
			eval, err := container.Achievement.RecomputeBadges(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("failed to recompute badges for %s: %w", userID, err)
			}

			unlocked := 0
			for _, b := range eval.Badges {
				if b.Unlocked {
					unlocked++
				}
			}
			logger.Info("Badges recomputed",
				slog.String("user_id", userID),
				slog.Int("unlocked", unlocked),
				slog.Int("newly_unlocked", len(eval.NewlyUnlocked)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d badges unlocked (%d new)\n", userID, unlocked, len(eval.Badges), len(eval.NewlyUnlocked))
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id whose badges are rebuilt")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
