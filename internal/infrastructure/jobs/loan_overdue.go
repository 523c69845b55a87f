package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"tujenge.backend/pkg/logger"
)

// OverdueProcessor sweeps active loans past their due date
type OverdueProcessor interface {
	ProcessOverdueLoans(ctx context.Context) (int, error)
}

// LoanOverdueJob runs the overdue sweep on a cron schedule
type LoanOverdueJob struct {
	processor OverdueProcessor
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
}

func NewLoanOverdueJob(processor OverdueProcessor, schedule string) *LoanOverdueJob {
	if schedule == "" {
		schedule = "0 2 * * *"
	}
	return &LoanOverdueJob{
		processor: processor,
		schedule:  schedule,
		timeout:   time.Hour,
	}
}

// Start schedules the sweep and begins the cron loop
func (j *LoanOverdueJob) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	logger.Info(context.Background(), "loan overdue job scheduled", zap.String("schedule", j.schedule))
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish
func (j *LoanOverdueJob) Stop() {
	if j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
}

func (j *LoanOverdueJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	touched, err := j.processor.ProcessOverdueLoans(ctx)
	if err != nil {
		logger.Error(ctx, "overdue sweep failed", zap.Error(err))
		return
	}
	if touched > 0 {
		logger.Info(ctx, "overdue sweep completed", zap.Int("loans_touched", touched))
	}
}
