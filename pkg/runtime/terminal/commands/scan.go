package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/sec-atlas/pkg/services/checks"
	"github.com/de-tools/sec-atlas/pkg/services/config"
	"github.com/de-tools/sec-atlas/pkg/services/scan"
	"github.com/de-tools/sec-atlas/pkg/store/duckdb"
	storesql "github.com/de-tools/sec-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// RegistryFactory resolves the account session for a profile and region. It returns
// the registry of checks bound to that session and the effective region.
type RegistryFactory func(ctx context.Context, profile, region string) (checks.Registry, string, error)

// SummaryReporter prints the report and the categories that were skipped
type SummaryReporter interface {
	scan.Sink
	WriteSkipped(skipped []api.SkippedCategory) error
}

type ScanCmd struct {
	profile    string
	region     string
	policyPath string
	outputDir  string
	checks     string
	dbPath     string
	timeout    time.Duration
	factory    RegistryFactory
	reporter   SummaryReporter
}

func NewScanCmd(factory RegistryFactory, reporter SummaryReporter) *cobra.Command {
	sc := &ScanCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the account for security misconfigurations",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profile, "profile", "", "AWS profile to use (default: the default credential chain)")
	cmd.Flags().StringVar(&sc.region, "region", "", "Region to scan (default: the profile region or us-east-1)")
	cmd.Flags().StringVar(&sc.policyPath, "policy", "", "Path to a policy file overriding the default thresholds")
	cmd.Flags().StringVar(&sc.outputDir, "output-dir", ".", "Directory for the JSON report")
	cmd.Flags().StringVar(&sc.checks, "checks", "", "Comma separated categories to run (default: all)")
	cmd.Flags().StringVar(&sc.dbPath, "db", "", "DuckDB file to persist the report into")
	cmd.Flags().DurationVar(&sc.timeout, "timeout", 5*time.Minute, "Overall scan timeout")

	return cmd
}

func (sc *ScanCmd) run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(cmd.Context()), sc.timeout)
	defer cancel()

	policy, err := config.LoadPolicy(sc.policyPath)
	if err != nil {
		return err
	}

	registry, region, err := sc.factory(ctx, sc.profile, sc.region)
	if err != nil {
		return fmt.Errorf("failed to create the check registry: %w", err)
	}

	sinks := []scan.Sink{
		export.NewFileSink(sc.outputDir),
		sc.reporter,
		export.NewReporter(cmd.OutOrStdout()),
	}
	if sc.dbPath != "" {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: sc.dbPath})
		if err != nil {
			return fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		defer db.Close()

		store, err := storesql.NewReportStore(db)
		if err != nil {
			return fmt.Errorf("failed to create report store: %w", err)
		}
		sinks = append(sinks, store)
	}

	service := scan.NewService(registry, policy.Policy, scan.Settings{
		Region:          region,
		CategoryTimeout: policy.CategoryTimeout,
	}, sinks)

	resp, err := service.Scan(ctx, ParseCategories(sc.checks))
	if err != nil {
		return err
	}
	return sc.reporter.WriteSkipped(resp.Skipped)
}

// ParseCategories splits a comma separated category list. Empty entries are ignored.
func ParseCategories(list string) []domain.Category {
	return domain.ParseCategories(strings.Split(list, ",")...)
}
