// Command reconcile reports OCR records that have stayed in processing longer
// than a threshold. These are jobs whose recognition and compensating failure
// write both failed. The command only reports; it never changes a record.
// Usage: go run ./cmd/reconcile -older-than 15m
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
	"ocrdesk/internal/export"
	"ocrdesk/internal/repository/postgres"
	"ocrdesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	olderThan := flag.Duration("older-than", cfg.Reconcile.StaleAfter, "report processing records older than this")
	asCSV := flag.Bool("csv", false, "write the report as CSV to stdout")
	flag.Parse()

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	monitor := service.NewStaleMonitor(postgres.NewOcrRecordRepo(db), service.StaleMonitorConfig{StaleAfter: *olderThan})
	cutoff := monitor.Cutoff()
	stale, err := monitor.Scan(ctx)
	if err != nil {
		return fmt.Errorf("listing stale records: %w", err)
	}

	log.Printf("reconcile: %d record(s) in processing since before %s", len(stale), cutoff.Format(time.RFC3339))
	if *asCSV {
		return export.WriteCSV(os.Stdout, stale)
	}
	printReport(os.Stdout, stale, time.Now())
	return nil
}

func printReport(w io.Writer, records []domain.OcrRecord, now time.Time) {
	for _, rec := range records {
		fmt.Fprintf(w, "%s\tuser=%s\tage=%s\timage=%s\n",
			rec.ID, rec.UserID, now.Sub(rec.CreatedAt).Truncate(time.Second), rec.ImagePath)
	}
}
