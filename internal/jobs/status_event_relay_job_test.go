package jobs_test

import (
	"context"
	"errors"
	"testing"

	"freightops/internal/core/application/usecases/commands"
	"freightops/internal/jobs"
	"freightops/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPublishHandler struct{ mock.Mock }

func (m *MockPublishHandler) Handle(ctx context.Context, cmd commands.PublishStatusEventsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func batchOf(n int) any {
	return mock.MatchedBy(func(cmd commands.PublishStatusEventsCommand) bool {
		return cmd.BatchSize() == n
	})
}

func TestStatusEventRelayJob_RunOnce(t *testing.T) {
	t.Run("counts published events", func(t *testing.T) {
		m := metrics.New()
		handler := new(MockPublishHandler)
		handler.On("Handle", mock.Anything, batchOf(50)).Return(3, nil).Once()
		job := jobs.NewStatusEventRelayJob(handler, "", 50, m, zap.NewNop())

		published, err := job.RunOnce(t.Context())

		require.NoError(t, err)
		assert.Equal(t, 3, published)
		assert.InDelta(t, 3, testutil.ToFloat64(m.EventsPublished), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(m.RelayFailures), 0)
		handler.AssertExpectations(t)
	})

	t.Run("failure is counted", func(t *testing.T) {
		m := metrics.New()
		handler := new(MockPublishHandler)
		handler.On("Handle", mock.Anything, batchOf(10)).Return(0, errors.New("broker down")).Once()
		job := jobs.NewStatusEventRelayJob(handler, "", 10, m, zap.NewNop())

		_, err := job.RunOnce(t.Context())

		require.EqualError(t, err, "broker down")
		assert.InDelta(t, 1, testutil.ToFloat64(m.RelayFailures), 0)
		assert.InDelta(t, 0, testutil.ToFloat64(m.EventsPublished), 0)
	})

	t.Run("invalid batch size never reaches the handler", func(t *testing.T) {
		handler := new(MockPublishHandler)
		job := jobs.NewStatusEventRelayJob(handler, "", 0, metrics.New(), zap.NewNop())

		_, err := job.RunOnce(t.Context())

		require.Error(t, err)
		handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestStatusEventRelayJob_StartRejectsBadSchedule(t *testing.T) {
	job := jobs.NewStatusEventRelayJob(new(MockPublishHandler), "not a schedule", 10, metrics.New(), zap.NewNop())

	require.Error(t, job.Start())
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (j fakeJob) Start() error {
	*j.log = append(*j.log, "start "+j.name)
	return j.startErr
}

func (j fakeJob) Stop() {
	*j.log = append(*j.log, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("stops in reverse order", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(fakeJob{name: "a", log: &log}, fakeJob{name: "b", log: &log})

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("failed start stops the started jobs", func(t *testing.T) {
		var log []string
		jm := jobs.NewJobManager(
			fakeJob{name: "a", log: &log},
			fakeJob{name: "b", log: &log, startErr: errors.New("boom")},
			fakeJob{name: "c", log: &log},
		)

		require.Error(t, jm.StartAll())
		assert.Equal(t, []string{"start a", "start b", "stop a"}, log)
	})
}
