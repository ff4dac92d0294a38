package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/port"
)

// OwnershipGuard authorizes self-service access to an order.
type OwnershipGuard struct{}

// Check passes only when the order's owner has the requester's email.
func (OwnershipGuard) Check(ctx context.Context, users port.UserRepository, requester domain.Requester, order domain.Order) error {
	owner, err := users.GetUser(ctx, order.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("User with id: %s not found.", order.UserID)
		}
		return fmt.Errorf("users.GetUser: %w", err)
	}

	if owner.Email != requester.Email {
		return domain.AccessDeniedf("User with email: %s has no access to order with id: %s.", requester.Email, order.ID)
	}

	return nil
}
