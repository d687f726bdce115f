package handler_test

import (
	"context"
	"testing"
	"time"

	"github.com/MichalMitros/price-monitor/internal/handler"
	"github.com/MichalMitros/price-monitor/internal/handler/mocks"
	"github.com/MichalMitros/price-monitor/pkg/v1/commander"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = zerolog.Nop()

func TestUnitHandle(t *testing.T) {
	date := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		message string
		mock    func(tasks *mocks.Tasks)
		wantErr error
	}{
		"scrape": {
			message: `{"type":"scrape","jobId":42}`,
			mock: func(tasks *mocks.Tasks) {
				tasks.On("RunScrapeJob", mock.Anything, int64(42)).Return(nil).Once()
			},
		},
		"product stats of date": {
			message: `{"type":"product_stats","date":"2024-03-09"}`,
			mock: func(tasks *mocks.Tasks) {
				tasks.On("ProductStats", mock.Anything, date).Return(nil).Once()
			},
		},
		"source stats of previous day": {
			message: `{"type":"source_stats"}`,
			mock: func(tasks *mocks.Tasks) {
				tasks.On("SourceStats", mock.Anything, time.Time{}).Return(nil).Once()
			},
		},
		"mapping changes": {
			message: `{"type":"mapping_changes"}`,
			mock: func(tasks *mocks.Tasks) {
				tasks.On("MappingChanges", mock.Anything).Return(nil).Once()
			},
		},
		"all alerts": {
			message: `{"type":"evaluate_alerts"}`,
			mock: func(tasks *mocks.Tasks) {
				tasks.On("EvaluateAlerts", mock.Anything).Return(nil).Once()
			},
		},
		"single alert": {
			message: `{"type":"evaluate_alert","ruleId":7}`,
			mock: func(tasks *mocks.Tasks) {
				tasks.On("EvaluateAlert", mock.Anything, int64(7)).Return(nil).Once()
			},
		},
		"cleanup error": {
			message: `{"type":"cleanup"}`,
			mock: func(tasks *mocks.Tasks) {
				tasks.On("Cleanup", mock.Anything).Return(assert.AnError).Once()
			},
			wantErr: assert.AnError,
		},
		"invalid command": {
			message: `{"type":"scrape"}`,
			mock:    func(*mocks.Tasks) {},
			wantErr: commander.ErrInvalidCommand,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tasks := mocks.NewTasks(t)
			tt.mock(tasks)

			err := handler.NewHandler(mocks.NewConsumer(t), tasks, &logger).Handle(context.TODO(), []byte(tt.message))

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
		})
	}

	t.Run("malformed message", func(t *testing.T) {
		err := handler.NewHandler(mocks.NewConsumer(t), mocks.NewTasks(t), &logger).Handle(context.TODO(), []byte("{"))

		require.ErrorContains(t, err, "can't decode command", "should return decoding error")
	})
}

func TestUnitStart(t *testing.T) {
	errs := make(chan error)
	close(errs)

	consumer := mocks.NewConsumer(t)
	consumer.On("Consume", mock.Anything, "price-monitor.commands", mock.Anything).Return((<-chan error)(errs), nil).Once()

	err := handler.NewHandler(consumer, mocks.NewTasks(t), &logger).Start(context.TODO(), "price-monitor.commands")
	require.NoError(t, err, "shouldn't return any error")

	t.Run("consume error", func(t *testing.T) {
		consumer := mocks.NewConsumer(t)
		consumer.On("Consume", mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

		err := handler.NewHandler(consumer, mocks.NewTasks(t), &logger).Start(context.TODO(), "queue")

		require.ErrorIs(t, err, assert.AnError, "should return error containing assert.AnError")
	})
}
