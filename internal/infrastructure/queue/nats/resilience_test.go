package nats

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/sony/gobreaker/v2"

	"github.com/kirillkom/planetary-dem/internal/core/domain"
)

func TestClassifyNATSError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
		record    bool
	}{
		{name: "no servers", err: fmt.Errorf("nats publish: %w", nats.ErrNoServers), retryable: true, record: true},
		{name: "timeout", err: nats.ErrTimeout, retryable: true, record: true},
		{name: "canceled", err: context.Canceled, retryable: false, record: false},
		{name: "open circuit", err: gobreaker.ErrOpenState, retryable: true, record: true},
		{name: "bad subject", err: nats.ErrBadSubject, retryable: false, record: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			class := classifyNATSError(tc.err)
			if class.Retryable != tc.retryable || class.RecordFailure != tc.record {
				t.Fatalf("expected retryable=%v record=%v, got %+v", tc.retryable, tc.record, class)
			}
		})
	}
}

func TestWrapTemporaryIfNeeded(t *testing.T) {
	if err := wrapTemporaryIfNeeded(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	wrapped := wrapTemporaryIfNeeded(nats.ErrNoServers)
	if !domain.IsKind(wrapped, domain.ErrTemporary) {
		t.Fatalf("expected temporary kind, got %v", wrapped)
	}
	permanent := errors.New("bad payload")
	if got := wrapTemporaryIfNeeded(permanent); domain.IsKind(got, domain.ErrTemporary) {
		t.Fatalf("expected permanent error to stay unwrapped, got %v", got)
	}
}
