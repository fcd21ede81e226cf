package models

// Order is created exactly once per successful purchase and is immutable
// thereafter. No timestamps are tracked.
type Order struct {
	ID        string
	ProductID int
	Quantity  int
	UserID    string
}

// OrderConfirmation is returned to the caller after a successful order.
type OrderConfirmation struct {
	Order          *Order
	RemainingStock int
}
