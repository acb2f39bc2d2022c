package fulfillment

import (
	"testing"

	"resto-system/internal/database/models"
)

func TestCanTransition_AllowedPaths(t *testing.T) {
	allowed := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusPending, models.OrderStatusPreparing},
		{models.OrderStatusPending, models.OrderStatusCancelled},
		{models.OrderStatusPreparing, models.OrderStatusReady},
		{models.OrderStatusPreparing, models.OrderStatusCancelled},
		{models.OrderStatusReady, models.OrderStatusCompleted},
		{models.OrderStatusReady, models.OrderStatusCancelled},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransition_ForbiddenPaths(t *testing.T) {
	forbidden := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusPending, models.OrderStatusReady},
		{models.OrderStatusPending, models.OrderStatusCompleted},
		{models.OrderStatusPreparing, models.OrderStatusCompleted},
		{models.OrderStatusPreparing, models.OrderStatusPending},
		{models.OrderStatusReady, models.OrderStatusPending},
		{models.OrderStatusReady, models.OrderStatusPreparing},
	}
	for _, tc := range forbidden {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be forbidden", tc.from, tc.to)
		}
	}
}

func TestCanTransition_TerminalStatesRejectEverything(t *testing.T) {
	all := []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	}
	for _, terminal := range []models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusCancelled} {
		for _, next := range all {
			if CanTransition(terminal, next) {
				t.Errorf("expected terminal %s to reject transition to %s", terminal, next)
			}
		}
	}
}

func TestCanTransition_NoSelfTransitions(t *testing.T) {
	for from := range allowedTransitions {
		if CanTransition(from, from) {
			t.Errorf("expected %s -> %s to be forbidden", from, from)
		}
	}
}
