package services

import (
	"context"
	"time"

	"github.com/yeremiapane/littlelemon/utils"
)

// AvailabilityMonitor periodically reconciles table availability so tables
// whose reservations have passed become bookable again.
type AvailabilityMonitor struct {
	Ledger   *ReservationLedger
	StopChan chan struct{}
	Interval time.Duration
}

func NewAvailabilityMonitor(ledger *ReservationLedger, interval time.Duration) *AvailabilityMonitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AvailabilityMonitor{
		Ledger:   ledger,
		StopChan: make(chan struct{}),
		Interval: interval,
	}
}

func (m *AvailabilityMonitor) Start() {
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.RunOnce(context.Background())
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *AvailabilityMonitor) Stop() {
	close(m.StopChan)
}

// RunOnce performs a single reconcile pass and reports how many tables it repaired.
func (m *AvailabilityMonitor) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, m.Interval)
	defer cancel()

	repaired, err := m.Ledger.Reconcile(ctx)
	if err != nil {
		utils.ErrorLogger.WithError(err).Error("availability reconcile failed")
		return 0
	}
	if len(repaired) > 0 {
		utils.InfoLogger.WithField("tables", len(repaired)).Info("table availability repaired")
	}
	return len(repaired)
}
