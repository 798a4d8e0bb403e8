package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ReportSequence = `CREATE SEQUENCE IF NOT EXISTS scan_report_id START 1;`

const ReportTableSchema = `
	CREATE TABLE IF NOT EXISTS scan_reports (
		id BIGINT PRIMARY KEY DEFAULT nextval('scan_report_id'),
		scan_date TIMESTAMP NOT NULL,
		region VARCHAR NOT NULL,
		total_vulnerabilities INTEGER NOT NULL,
		document VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	ReportSequence,
	ReportTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return fmt.Errorf("boot query failed: %w", err)
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}
