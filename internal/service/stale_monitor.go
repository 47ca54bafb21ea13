package service

import (
	"context"
	"log"
	"time"

	"ocrdesk/internal/domain"
	"ocrdesk/internal/port"
)

// StaleMonitorConfig holds settings for the stale record monitor.
type StaleMonitorConfig struct {
	Interval   time.Duration
	StaleAfter time.Duration
}

// StaleMonitor reports records left in processing, which happens when both a
// recognition and its compensating failure write failed. It never modifies
// records.
type StaleMonitor struct {
	repo port.OcrRecordRepository
	cfg  StaleMonitorConfig
	now  func() time.Time
}

// NewStaleMonitor creates a new StaleMonitor.
func NewStaleMonitor(repo port.OcrRecordRepository, cfg StaleMonitorConfig) *StaleMonitor {
	return &StaleMonitor{repo: repo, cfg: cfg, now: time.Now}
}

// Cutoff returns the creation time before which a processing record is stale.
func (m *StaleMonitor) Cutoff() time.Time {
	return m.now().UTC().Add(-m.cfg.StaleAfter)
}

// Scan returns all processing records older than the stale threshold.
func (m *StaleMonitor) Scan(ctx context.Context) ([]domain.OcrRecord, error) {
	return m.repo.ListStale(ctx, m.Cutoff())
}

// Start scans on every tick until ctx is canceled. A non-positive interval
// disables the monitor.
func (m *StaleMonitor) Start(ctx context.Context) {
	if m.cfg.Interval <= 0 {
		log.Printf("staleMonitor: disabled")
		return
	}

	ticker := time.NewTicker(m.cfg.Interval)
	defer ticker.Stop()

	log.Printf("staleMonitor: started (interval=%s, staleAfter=%s)", m.cfg.Interval, m.cfg.StaleAfter)

	for {
		select {
		case <-ctx.Done():
			log.Printf("staleMonitor: shutdown complete")
			return
		case <-ticker.C:
			m.report(ctx)
		}
	}
}

func (m *StaleMonitor) report(ctx context.Context) {
	stale, err := m.Scan(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("staleMonitor: scan failed: %v", err)
		}
		return
	}
	for i := range stale {
		log.Printf("staleMonitor: record %s of user %s still processing since %s",
			stale[i].ID, stale[i].UserID, stale[i].CreatedAt.Format(time.RFC3339))
	}
}
