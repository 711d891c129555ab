package lifecycle

import "fmt"

// Reason codes for illegal transition attempts. These surface verbatim
// in REJECT artifacts, so their spelling is part of the wire contract.
const (
	ReasonInvalidEventToken   = "INVALID_EVENT_TOKEN"
	ReasonIllegalTransition   = "ILLEGAL_TRANSITION"
	ReasonInvalidCurrentState = "INVALID_CURRENT_STATE"
)

// TransitionError reports why a transition attempt was refused.
type TransitionError struct {
	Code  string
	From  OrderState
	Event EventToken
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: event %q from state %q", e.Code, e.Event, e.From)
}

// edge is one (from_state, event) key in the transition table.
type edge struct {
	from  OrderState
	event EventToken
}

// transitions is the complete 17-edge table: 13 standard edges plus 4
// cancellation edges. It is data, not logic, and must never be mutated.
var transitions = map[edge]OrderState{
	{Created, CreatePayment}:             PaymentPending,
	{PaymentPending, PaymentSucceeded}:   Paid,
	{PaymentPending, PaymentDeclined}:    PaymentFailed,
	{PaymentFailed, RetryPayment}:        PaymentPending,
	{Paid, FlagFraud}:                    FraudReview,
	{FraudReview, ApproveFraud}:          InventoryReserved,
	{FraudReview, RejectFraud}:           Cancelled,
	{Paid, ReserveInventory}:             InventoryReserved,
	{InventoryReserved, StartPicking}:    Picking,
	{Picking, PackOrder}:                 Packed,
	{Packed, ShipOrder}:                  Shipped,
	{Shipped, MarkInTransit}:             InTransit,
	{InTransit, ConfirmDelivery}:         Delivered,
	{Created, CancelOrder}:               Cancelled,
	{PaymentPending, CancelOrder}:        Cancelled,
	{Paid, CancelOrder}:                  Cancelled,
	{InventoryReserved, CancelOrder}:     Cancelled,
}

// Transition applies one event to the current state. It is a pure, total
// lookup: every (state, token) pair yields either the next state or a
// typed error with one of the three reason codes.
//
// The INVALID_CURRENT_STATE guard should be unreachable when callers use
// the closed state set, but totality requires handling it.
func Transition(current OrderState, event EventToken) (OrderState, error) {
	if !IsValidState(current) {
		return "", &TransitionError{Code: ReasonInvalidCurrentState, From: current, Event: event}
	}
	if !IsValidEventToken(event) {
		return "", &TransitionError{Code: ReasonInvalidEventToken, From: current, Event: event}
	}
	next, ok := transitions[edge{current, event}]
	if !ok {
		return "", &TransitionError{Code: ReasonIllegalTransition, From: current, Event: event}
	}
	return next, nil
}

// AllowedEventsFrom returns the event tokens legal from the given state,
// in the canonical AllEventTokens order. Terminal states return nil.
func AllowedEventsFrom(state OrderState) []EventToken {
	var allowed []EventToken
	for _, t := range AllEventTokens {
		if _, ok := transitions[edge{state, t}]; ok {
			allowed = append(allowed, t)
		}
	}
	return allowed
}

// EdgeCount is the size of the frozen transition table, exposed so tests
// can pin table completeness.
func EdgeCount() int {
	return len(transitions)
}
