// File: internal/jobs/pending_review.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"carmarket_backend/internal/car"
	"carmarket_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PendingReviewJob periodically reports the moderation backlog so pending
// listings do not sit unnoticed.
type PendingReviewJob struct {
	carService    car.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewPendingReviewJob creates a new PendingReviewJob.
func NewPendingReviewJob(
	carService car.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *PendingReviewJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &PendingReviewJob{
		carService:    carService,
		logger:        logger.Named("PendingReviewJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *PendingReviewJob) SetupAndStart() error {
	jobSpec := j.cfg.PendingReviewJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Pending review job schedule not defined (PENDING_REVIEW_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule pending review job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Pending review job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob is the actual work performed by the cron job.
func (j *PendingReviewJob) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pendingCount, err := j.carService.CountPending(ctx)
	if err != nil {
		j.logger.Error("Pending review job run failed", zap.Error(err))
		return
	}
	if pendingCount == 0 {
		j.logger.Debug("No listings awaiting review")
		return
	}
	j.logger.Info("Listings awaiting admin review", zap.Int64("pending_count", pendingCount))
}

// Stop gracefully stops the cron scheduler.
func (j *PendingReviewJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping pending review job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Pending review job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Pending review job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
