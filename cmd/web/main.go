package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/sec-atlas/pkg/server"
	checksaws "github.com/de-tools/sec-atlas/pkg/services/checks/aws"
	"github.com/de-tools/sec-atlas/pkg/services/config"
	"github.com/de-tools/sec-atlas/pkg/services/scan"
	"github.com/de-tools/sec-atlas/pkg/store/duckdb"
	storesql "github.com/de-tools/sec-atlas/pkg/store/sql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	profile    string
	region     string
	policyPath string
	dbPath     string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Sec Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&profile, "profile", "", "AWS profile to use (default: the default credential chain)")
	rootCmd.Flags().StringVar(&region, "region", "", "Region to scan (default: the profile region or us-east-1)")
	rootCmd.Flags().StringVar(&policyPath, "policy", "", "Path to a policy file overriding the default thresholds")
	rootCmd.Flags().StringVar(&dbPath, "db", "sec-atlas.db", "DuckDB file storing the scan reports")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	policy, err := config.LoadPolicy(policyPath)
	if err != nil {
		return err
	}

	registry, scanRegion, err := checksaws.RegistryFactory(ctx, profile, region)
	if err != nil {
		return fmt.Errorf("failed to create check registry: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: dbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	reports, err := storesql.NewReportStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}

	scanner := scan.NewService(registry, policy.Policy, scan.Settings{
		Region:          scanRegion,
		CategoryTimeout: policy.CategoryTimeout,
	}, []scan.Sink{reports})

	logger.Info().Msgf("Scanning region `%s` with checks: %v", scanRegion, scanner.ListCategories())

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		return fmt.Errorf("missing SERVER_HOST or SERVER_PORT in the environment or .env file")
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Scanner: scanner,
			Reports: reports,
			Logger:  logger,
		},
	})

	return api.Start()
}
