package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductStatusAvailable   ProductStatus = "AVAILABLE"
	ProductStatusUnavailable ProductStatus = "UNAVAILABLE"
)

type Product struct {
	ID     uuid.UUID
	Name   string
	Price  Money
	Status ProductStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
