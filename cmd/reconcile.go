package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"changeset-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	purgeArchive  bool
	dryRunArchive bool
	yesConfirm    bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile stored collections with archived plans",
	Long: `Reconcile the database and the plan archive to detect orphaned plans and
collections whose archived plan count does not match their revision.`,
}

// archiveReconcileCmd performs archive reconciliation with optional purge.
var archiveReconcileCmd = &cobra.Command{
	Use:   "archive",
	Short: "Reconcile the plan archive (report + optionally purge orphans)",
	Long: `Reconcile collections in the database with plans in object storage.

Examples:
  # Report only
  reconcile archive

  # Purge orphaned plans (with interactive confirmation)
  reconcile archive --purge

  # Purge with auto-confirm (non-interactive)
  reconcile archive --purge --yes`,
	RunE: runArchiveReconcile,
}

func init() {
	reconcileCmd.AddCommand(archiveReconcileCmd)

	archiveReconcileCmd.Flags().BoolVar(&purgeArchive, "purge", false, "Enable purge (delete plans of collections missing in the database)")
	archiveReconcileCmd.Flags().BoolVar(&dryRunArchive, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	archiveReconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runArchiveReconcile(cmd *cobra.Command, args []string) error {
	svc, l, err := newIntegrityService()
	if err != nil {
		return err
	}

	l.Info("Planning reconciliation...")
	plan, _, err := svc.ReconcileArchive(cmd.Context(), purgeArchive, false)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	printReconcileReport(l, plan)

	if !purgeArchive {
		l.Info("No actions requested. Use --purge to delete orphaned plans.")
		return nil
	}
	if dryRunArchive {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	l.Info("Applying actions...")
	_, executed, err := svc.ReconcileArchive(cmd.Context(), true, true)
	if err != nil {
		return fmt.Errorf("failed to apply plan (%d plans deleted): %w", executed, err)
	}

	l.Info("Successfully deleted orphaned plans", zap.Int("count", executed))
	return nil
}

// printReconcileReport prints a reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	l.Info("Reconciliation report",
		zap.Int("total_collections", s.TotalCollections),
		zap.Int("missing_storage", s.MissingStorage),
		zap.Int("orphaned", s.Orphaned),
		zap.Int("mismatches", s.Mismatches),
	)

	for _, r := range plan.Results {
		if len(r.Mismatch) > 0 {
			l.Warn("Plan count mismatch", zap.String("id", r.ID), zap.String("name", r.Name), zap.Strings("mismatch", r.Mismatch))
		}
	}

	const maxShow = 5
	for i, action := range plan.Actions {
		if i == maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
			break
		}
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.Int("plans", len(action.Plans)),
			zap.String("reason", action.Reason),
		)
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
