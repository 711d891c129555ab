package lifecycle

// EventToken is one of the fourteen closed event tokens. Each token maps
// to exactly one transition edge, except CancelOrder which is legal from
// several states.
type EventToken string

const (
	// Payment flow.
	CreatePayment    EventToken = "create_payment"    // CREATED -> PAYMENT_PENDING
	PaymentSucceeded EventToken = "payment_succeeded" // PAYMENT_PENDING -> PAID
	PaymentDeclined  EventToken = "payment_failed"    // PAYMENT_PENDING -> PAYMENT_FAILED
	RetryPayment     EventToken = "retry_payment"     // PAYMENT_FAILED -> PAYMENT_PENDING

	// Fraud review flow.
	FlagFraud    EventToken = "flag_fraud"    // PAID -> FRAUD_REVIEW
	ApproveFraud EventToken = "approve_fraud" // FRAUD_REVIEW -> INVENTORY_RESERVED
	RejectFraud  EventToken = "reject_fraud"  // FRAUD_REVIEW -> CANCELLED

	// Fulfillment flow.
	ReserveInventory EventToken = "reserve_inventory" // PAID -> INVENTORY_RESERVED
	StartPicking     EventToken = "start_picking"     // INVENTORY_RESERVED -> PICKING
	PackOrder        EventToken = "pack_order"        // PICKING -> PACKED
	ShipOrder        EventToken = "ship_order"        // PACKED -> SHIPPED
	MarkInTransit    EventToken = "mark_in_transit"   // SHIPPED -> IN_TRANSIT
	ConfirmDelivery  EventToken = "confirm_delivery"  // IN_TRANSIT -> DELIVERED

	// Cancellation, allowed from multiple states.
	CancelOrder EventToken = "cancel_order"
)

// AllEventTokens lists the closed event vocabulary.
var AllEventTokens = []EventToken{
	CreatePayment, PaymentSucceeded, PaymentDeclined, RetryPayment,
	FlagFraud, ApproveFraud, RejectFraud,
	ReserveInventory, StartPicking, PackOrder, ShipOrder,
	MarkInTransit, ConfirmDelivery,
	CancelOrder,
}

var validEventTokens = func() map[EventToken]bool {
	m := make(map[EventToken]bool, len(AllEventTokens))
	for _, t := range AllEventTokens {
		m[t] = true
	}
	return m
}()

// IsValidEventToken reports whether t is in the closed event vocabulary.
func IsValidEventToken(t EventToken) bool {
	return validEventTokens[t]
}
