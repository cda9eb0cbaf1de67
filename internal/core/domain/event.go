package domain

import "time"

type ClientEventType string

const (
	EventCartAdd    ClientEventType = "cart_add"
	EventCartRemove ClientEventType = "cart_remove"
	EventCartUpdate ClientEventType = "cart_update"
	EventCartClear  ClientEventType = "cart_clear"
	EventLogin      ClientEventType = "login"
	EventSignup     ClientEventType = "signup"
)

// A ClientEvent describes one storefront interaction for the analytics
// stream. ProductID, Size and Quantity are empty for non-cart events.
type ClientEvent struct {
	Type       ClientEventType
	ProductID  string
	Size       string
	Quantity   int
	UserID     string
	OccurredAt time.Time
}
