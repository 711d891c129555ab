// Package lifecycle implements the closed-world order lifecycle state
// machine used by the decision engine's transition-legality gate. The
// state set, event vocabulary, and transition table are frozen data:
// every legality question is a table lookup, never branching logic.
package lifecycle

// OrderState is one of the twelve closed order processing states.
type OrderState string

const (
	Created           OrderState = "CREATED"
	PaymentPending    OrderState = "PAYMENT_PENDING"
	PaymentFailed     OrderState = "PAYMENT_FAILED"
	Paid              OrderState = "PAID"
	FraudReview       OrderState = "FRAUD_REVIEW"
	InventoryReserved OrderState = "INVENTORY_RESERVED"
	Picking           OrderState = "PICKING"
	Packed            OrderState = "PACKED"
	Shipped           OrderState = "SHIPPED"
	InTransit         OrderState = "IN_TRANSIT"
	Delivered         OrderState = "DELIVERED"
	Cancelled         OrderState = "CANCELLED"
)

// InitialState is the fixed starting state for every run.
const InitialState = Created

// DemoOrderID is the single synthetic order instance. State exists only
// within one run; nothing is persisted across invocations.
const DemoOrderID = "demo-order-1"

// AllStates lists the closed state set in lifecycle order.
var AllStates = []OrderState{
	Created, PaymentPending, PaymentFailed, Paid, FraudReview,
	InventoryReserved, Picking, Packed, Shipped, InTransit,
	Delivered, Cancelled,
}

var validStates = func() map[OrderState]bool {
	m := make(map[OrderState]bool, len(AllStates))
	for _, s := range AllStates {
		m[s] = true
	}
	return m
}()

// terminalStates have no outgoing transitions.
var terminalStates = map[OrderState]bool{
	Delivered: true,
	Cancelled: true,
}

// IsValidState reports whether s is in the closed state set.
func IsValidState(s OrderState) bool {
	return validStates[s]
}

// IsTerminal reports whether s is a terminal state.
func IsTerminal(s OrderState) bool {
	return terminalStates[s]
}
