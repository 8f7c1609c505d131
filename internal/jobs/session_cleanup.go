// File: internal/jobs/session_cleanup.go
package jobs

import (
	"fmt"
	"time"

	"company_portal_backend/internal/address"
	"company_portal_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionCleanupJob holds dependencies for the address-session sweep job.
type SessionCleanupJob struct {
	addressService address.Service
	logger         *zap.Logger
	cfg            *config.Config
	cronScheduler  *cron.Cron
}

// NewSessionCleanupJob creates a new SessionCleanupJob.
func NewSessionCleanupJob(
	addressService address.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *SessionCleanupJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &SessionCleanupJob{
		addressService: addressService,
		logger:         logger.Named("SessionCleanupJob"),
		cfg:            cfg,
		cronScheduler:  scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *SessionCleanupJob) SetupAndStart() error {
	jobSpec := j.cfg.AddressSessionSweepSpec // e.g., "@every 10m"
	if jobSpec == "" {
		j.logger.Warn("Address session sweep schedule not defined (ADDRESS_SESSION_SWEEP_SCHEDULE). Job will not run.")
		return nil // Not a fatal error, just won't run
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule address session sweep", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Address session sweep scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob drops every expired editing session.
func (j *SessionCleanupJob) runJob() {
	removed := j.addressService.SweepExpired()
	if removed > 0 {
		j.logger.Info("Address session sweep completed", zap.Int("sessions_removed", removed))
	} else {
		j.logger.Debug("Address session sweep completed, nothing to remove")
	}
}

// Stop gracefully stops the cron scheduler.
func (j *SessionCleanupJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping address session sweep scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Address session sweep scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Address session sweep scheduler stop timed out.")
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
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
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
