package jobs

import (
	"context"
	"time"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRelaySchedule runs the relay every five seconds.
const DefaultRelaySchedule = "*/5 * * * * *"

type publishStatusEventsHandler interface {
	Handle(ctx context.Context, command commands.PublishStatusEventsCommand) (int, error)
}

// StatusEventRelayJob moves committed status events to the event stream on
// a cron schedule. A run that is still going when the next tick fires makes
// that tick a no-op.
type StatusEventRelayJob struct {
	handler   publishStatusEventsHandler
	schedule  string
	batchSize int
	timeout   time.Duration
	metrics   *metrics.Metrics
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewStatusEventRelayJob(
	handler publishStatusEventsHandler,
	schedule string,
	batchSize int,
	m *metrics.Metrics,
	logger *zap.Logger,
) *StatusEventRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	logger = logger.Named("status_event_relay")
	scheduler := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger.Sugar()})),
	)

	return &StatusEventRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		timeout:   30 * time.Second,
		metrics:   m,
		cron:      scheduler,
		logger:    logger,
	}
}

// Start registers the relay with the scheduler and starts it.
func (j *StatusEventRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Status event relay started", zap.String("schedule", j.schedule), zap.Int("batch_size", j.batchSize))
	return nil
}

// RunOnce publishes one batch and records the outcome.
func (j *StatusEventRelayJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewPublishStatusEventsCommand(j.batchSize)
	if err != nil {
		j.logger.Error("Invalid relay batch size", zap.Int("batch_size", j.batchSize), zap.Error(err))
		return 0, err
	}

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.metrics.RelayFailures.Inc()
		j.logger.Error("Status event relay failed", zap.Error(err))
		return 0, err
	}

	if published > 0 {
		j.metrics.EventsPublished.Add(float64(published))
		j.logger.Debug("Status events published", zap.Int("count", published))
	}
	return published, nil
}

// Stop waits for a running relay pass to finish.
func (j *StatusEventRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Status event relay stopped")
}

// cronLogger feeds cron's scheduler messages into zap.
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
