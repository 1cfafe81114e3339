package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	tenantsDomain "github.com/reviewdesk/tokenvault/internal/tenants/domain"
	tenantsUsecase "github.com/reviewdesk/tokenvault/internal/tenants/usecase"
)

// RunMigrateTokens re-encrypts every stored refresh token under the current
// key. In dry-run mode it only reports what a real run would do. A real run
// asks for interactive confirmation unless force is set. The returned error
// is non-nil when any row failed, so the process exits non-zero and the
// operator re-runs after fixing the cause.
func RunMigrateTokens(
	ctx context.Context,
	useCase tenantsUsecase.TokenMigrationUseCase,
	logger *slog.Logger,
	cmdIO IOTuple,
	dryRun bool,
	force bool,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}

	if !dryRun && !force {
		confirmed, err := confirm(cmdIO, "Re-encrypt all stored refresh tokens under the current key?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmdIO.Writer, "Aborted.")
			return nil
		}
	}

	logger.Info("starting token migration",
		slog.Bool("dry_run", dryRun),
	)

	report, err := useCase.Migrate(ctx, dryRun)
	if err != nil {
		return fmt.Errorf("failed to migrate tokens: %w", err)
	}

	if format == "json" {
		if err := outputMigrationJSON(cmdIO, report); err != nil {
			return err
		}
	} else {
		outputMigrationText(cmdIO, report)
	}

	logger.Info("token migration completed",
		slog.Int("total", report.Total),
		slog.Int("migrated", report.Migrated),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
		slog.Bool("dry_run", report.DryRun),
	)

	if report.Failed > 0 {
		return fmt.Errorf("%d token(s) failed to migrate", report.Failed)
	}
	return nil
}

// outputMigrationText outputs the report in human-readable text format.
func outputMigrationText(cmdIO IOTuple, report *tenantsDomain.MigrationReport) {
	verb := "Migrated"
	if report.DryRun {
		verb = "Would migrate"
	}

	fmt.Fprintf(cmdIO.Writer, "Scanned %d tenant(s) with stored tokens\n", report.Total)
	fmt.Fprintf(cmdIO.Writer, "%s: %d, already current: %d, failed: %d\n",
		verb, report.Migrated, report.Skipped, report.Failed)

	for _, failure := range report.Failures {
		fmt.Fprintf(cmdIO.Writer, "  failed tenant %s: %s\n", failure.TenantID, failure.Reason)
	}
}

// outputMigrationJSON outputs the report in JSON format for machine consumption.
func outputMigrationJSON(cmdIO IOTuple, report *tenantsDomain.MigrationReport) error {
	jsonBytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(cmdIO.Writer, string(jsonBytes))
	return nil
}
