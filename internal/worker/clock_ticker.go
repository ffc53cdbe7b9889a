package worker

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Ticker is refreshed on every scheduled tick.
type Ticker interface {
	Tick()
}

// ClockTicker refreshes the view's current time on a fixed period.
type ClockTicker struct {
	cron   *cron.Cron
	target Ticker
	logger *zap.Logger
}

// StartClockTicker schedules target.Tick every interval and starts the
// scheduler. Intervals below one second are rounded up by cron.
func StartClockTicker(target Ticker, interval time.Duration, logger *zap.Logger) (*ClockTicker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", interval)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &ClockTicker{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		target: target,
		logger: logger,
	}
	t.cron.Schedule(cron.Every(interval), cron.FuncJob(t.run))
	t.cron.Start()
	logger.Info("clock ticker started", zap.Duration("interval", interval))
	return t, nil
}

func (t *ClockTicker) run() {
	t.target.Tick()
	t.logger.Debug("clock tick")
}

// Stop halts the schedule and waits for a running tick to finish. No tick
// fires after Stop returns.
func (t *ClockTicker) Stop() {
	if t == nil {
		return
	}
	<-t.cron.Stop().Done()
	t.logger.Info("clock ticker stopped")
}
