package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-BayBookingService/internal/domain"
	"github.com/m04kA/SMC-BayBookingService/internal/service/syncbatches/models"
)

// Коды выхода reconcile: 0 success, 1 partial, 2 failed
const (
	exitPartial = 1
	exitFailed  = 2
)

// exitError ошибка с кодом завершения процесса
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func newReconcileCmd(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation tick against the external calendars and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := loadApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			batch, err := a.reconciler().Execute(ctx, domain.TriggerCLI)
			if batch == nil {
				if err == nil {
					err = fmt.Errorf("reconcile returned no batch")
				}
				return &exitError{code: exitFailed, err: err}
			}

			if err := printBatch(cmd, batch, asJSON); err != nil {
				return err
			}

			switch batch.Outcome {
			case domain.OutcomeSuccess:
				return nil
			case domain.OutcomePartial:
				return &exitError{code: exitPartial, err: fmt.Errorf("tick %s finished partially", batch.ID)}
			default:
				if err == nil {
					err = fmt.Errorf("tick %s failed", batch.ID)
				}
				return &exitError{code: exitFailed, err: err}
			}
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the batch as JSON")

	return cmd
}

func printBatch(cmd *cobra.Command, batch *domain.SyncBatch, asJSON bool) error {
	resp := models.FromDomainBatch(batch)
	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintf(out, "batch %s: %s\n", resp.ID, resp.Outcome)
	for _, r := range batch.Resources {
		line := fmt.Sprintf("  %-12s created=%d updated=%d deleted=%d failed=%d",
			r.ResourceID, r.Created, r.Updated, r.Deleted, r.Failed)
		if r.Skipped {
			line += " skipped"
		}
		if r.Error != nil {
			line += " error=" + *r.Error
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
