package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID     uuid.UUID
	UserID uuid.UUID

	FirstName string
	LastName  string
	Address   string
	ZipCode   string
	City      string
	Phone     string

	DeliveryMethod DeliveryMethod
	Status         OrderStatus
	Items          []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem is frozen at creation: Quantity and PriceAtPurchase never change afterwards.
type OrderItem struct {
	ID              uuid.UUID
	OrderID         uuid.UUID
	ProductID       uuid.UUID
	Quantity        int
	PriceAtPurchase Money

	CreatedAt time.Time
}

// Total sums quantity times price over all items.
func (o Order) Total() (Money, error) {
	if len(o.Items) == 0 {
		return Money{}, errors.New("no items in order")
	}

	total := o.Items[0].PriceAtPurchase.Times(o.Items[0].Quantity)
	for _, item := range o.Items[1:] {
		var err error
		total, err = total.Add(item.PriceAtPurchase.Times(item.Quantity))
		if err != nil {
			return Money{}, fmt.Errorf("item[%s]: %w", item.ID, err)
		}
	}

	return total, nil
}

func (o Order) Validate() error {
	if o.UserID == uuid.Nil {
		return errors.New("userID is empty")
	}

	if len(o.Items) == 0 {
		return errors.New("no items in order")
	}

	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("item[%s]: quantity must be positive", item.ProductID)
		}
	}

	return nil
}
