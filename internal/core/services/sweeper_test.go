package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunExpirySweeper_KeepsGoingAfterFailure(t *testing.T) {
	lifecycle := new(MockDocumentLifecycle)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lifecycle.On("SweepExpired", mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, errors.New("db down")).Once()
	lifecycle.On("SweepExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(&dto.SweepResponse{Overdue: 2}, nil).
		Run(func(mock.Arguments) { cancel() })

	done := make(chan struct{})
	go func() {
		services.RunExpirySweeper(ctx, lifecycle, 5*time.Millisecond, discardLogger())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, len(lifecycle.Calls), 2)
}

func TestRunExpirySweeper_Disabled(t *testing.T) {
	lifecycle := new(MockDocumentLifecycle)

	services.RunExpirySweeper(context.Background(), lifecycle, 0, discardLogger())

	lifecycle.AssertNotCalled(t, "SweepExpired", mock.Anything, mock.Anything)
}
