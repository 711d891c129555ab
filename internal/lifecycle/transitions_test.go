package lifecycle

import (
	"errors"
	"testing"
)

func TestStandardEdges(t *testing.T) {
	cases := []struct {
		from  OrderState
		event EventToken
		want  OrderState
	}{
		{Created, CreatePayment, PaymentPending},
		{PaymentPending, PaymentSucceeded, Paid},
		{PaymentPending, PaymentDeclined, PaymentFailed},
		{PaymentFailed, RetryPayment, PaymentPending},
		{Paid, FlagFraud, FraudReview},
		{FraudReview, ApproveFraud, InventoryReserved},
		{FraudReview, RejectFraud, Cancelled},
		{Paid, ReserveInventory, InventoryReserved},
		{InventoryReserved, StartPicking, Picking},
		{Picking, PackOrder, Packed},
		{Packed, ShipOrder, Shipped},
		{Shipped, MarkInTransit, InTransit},
		{InTransit, ConfirmDelivery, Delivered},
	}
	for _, tc := range cases {
		t.Run(string(tc.event), func(t *testing.T) {
			next, err := Transition(tc.from, tc.event)
			if err != nil {
				t.Fatalf("Transition(%s, %s): unexpected error %v", tc.from, tc.event, err)
			}
			if next != tc.want {
				t.Errorf("Transition(%s, %s) = %s, want %s", tc.from, tc.event, next, tc.want)
			}
		})
	}
}

func TestCancellationEdges(t *testing.T) {
	allowed := []OrderState{Created, PaymentPending, Paid, InventoryReserved}
	for _, from := range allowed {
		next, err := Transition(from, CancelOrder)
		if err != nil {
			t.Errorf("cancel_order from %s: unexpected error %v", from, err)
			continue
		}
		if next != Cancelled {
			t.Errorf("cancel_order from %s = %s, want CANCELLED", from, next)
		}
	}

	for _, from := range []OrderState{PaymentFailed, FraudReview, Picking, Packed, Shipped, InTransit, Delivered, Cancelled} {
		if _, err := Transition(from, CancelOrder); err == nil {
			t.Errorf("cancel_order from %s: expected ILLEGAL_TRANSITION", from)
		}
	}
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	for _, s := range []OrderState{Delivered, Cancelled} {
		if events := AllowedEventsFrom(s); len(events) != 0 {
			t.Errorf("terminal state %s has outgoing events %v", s, events)
		}
	}
}

func TestUnknownEventToken(t *testing.T) {
	_, err := Transition(Created, EventToken("teleport_order"))
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if te.Code != ReasonInvalidEventToken {
		t.Errorf("expected %s, got %s", ReasonInvalidEventToken, te.Code)
	}
}

func TestInvalidCurrentState(t *testing.T) {
	_, err := Transition(OrderState("LIMBO"), CreatePayment)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransitionError, got %v", err)
	}
	if te.Code != ReasonInvalidCurrentState {
		t.Errorf("expected %s, got %s", ReasonInvalidCurrentState, te.Code)
	}
}

// TestMatrixTotality checks every state x token combination: each yields
// either a valid next state or ILLEGAL_TRANSITION, and the total number
// of legal edges matches the frozen 17-edge table.
func TestMatrixTotality(t *testing.T) {
	legal := 0
	for _, state := range AllStates {
		for _, token := range AllEventTokens {
			next, err := Transition(state, token)
			if err == nil {
				legal++
				if !IsValidState(next) {
					t.Errorf("Transition(%s, %s) produced out-of-set state %q", state, token, next)
				}
				if IsTerminal(state) {
					t.Errorf("terminal state %s permitted event %s", state, token)
				}
				continue
			}
			var te *TransitionError
			if !errors.As(err, &te) {
				t.Fatalf("Transition(%s, %s): unexpected error type %T", state, token, err)
			}
			if te.Code != ReasonIllegalTransition {
				t.Errorf("Transition(%s, %s): expected ILLEGAL_TRANSITION, got %s", state, token, te.Code)
			}
		}
	}
	if legal != 17 {
		t.Errorf("expected 17 legal edges, found %d", legal)
	}
	if EdgeCount() != 17 {
		t.Errorf("transition table has %d edges, want 17", EdgeCount())
	}
}

func TestAllowedEventsFromCreated(t *testing.T) {
	events := AllowedEventsFrom(Created)
	if len(events) != 2 {
		t.Fatalf("expected 2 events from CREATED, got %v", events)
	}
	if events[0] != CreatePayment || events[1] != CancelOrder {
		t.Errorf("unexpected events from CREATED: %v", events)
	}
}
