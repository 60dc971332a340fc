package order

import "time"

// Status values an order moves through.
const (
	StatusWaitingPayment = "WAITING_PAYMENT"
	StatusPaid           = "PAID"
	StatusShipped        = "SHIPPED"
	StatusDelivered      = "DELIVERED"
	StatusCanceled       = "CANCELED"
)

// Order is placed by a client (a user). While a user has orders it cannot be deleted.
type Order struct {
	ID       int64
	Moment   time.Time
	Status   string
	ClientID int64
}
