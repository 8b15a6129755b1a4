package driver

import (
	"context"
	"time"
)

// TickerScheduler paces frames off the wall clock at a fixed refresh rate,
// for hosts without a display-driven frame callback.
type TickerScheduler struct {
	ticker *time.Ticker
}

func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (s *TickerScheduler) Next(ctx context.Context) (time.Time, error) {
	select {
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	case t := <-s.ticker.C:
		return t, nil
	}
}

func (s *TickerScheduler) Stop() { s.ticker.Stop() }
