package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrOrderDelivered = errors.New("order is already delivered")

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch v := OrderStatus(s); v {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered:
		return v, nil
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// Next returns the following status. Progression is forward-only, there is
// no transition out of delivered.
func (s OrderStatus) Next() (OrderStatus, error) {
	switch s {
	case OrderPending:
		return OrderProcessing, nil
	case OrderProcessing:
		return OrderShipped, nil
	case OrderShipped:
		return OrderDelivered, nil
	case OrderDelivered:
		return "", ErrOrderDelivered
	}
	return "", fmt.Errorf("unknown order status: %q", s)
}

// An Order is a historical record. Items, total and shipping address are
// snapshots taken at creation and never mutated afterwards.
type Order struct {
	ID              string
	UserID          string
	Items           []CartItem
	Total           float64
	Status          OrderStatus
	CreatedAt       time.Time
	ShippingAddress *Address
}

// Advance moves the order status one step forward.
func (o *Order) Advance() error {
	next, err := o.Status.Next()
	if err != nil {
		return err
	}
	o.Status = next
	return nil
}
