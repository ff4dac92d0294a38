package domain

import (
	"time"

	"github.com/google/uuid"
)

type Cart struct {
	UserID uuid.UUID
	Items  []CartItem
}

type CartItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int

	CreatedAt time.Time
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
