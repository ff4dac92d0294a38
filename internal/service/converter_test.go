package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func sequentialIDs(ids ...uuid.UUID) func() uuid.UUID {
	i := 0
	return func() uuid.UUID {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func TestCartSnapshotConverter_Convert(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	user := store.addUser(domain.RoleUser)
	mug := store.addProduct("7.25", currency.GBP, domain.ProductStatusAvailable)
	tea := store.addProduct("3.10", currency.GBP, domain.ProductStatusAvailable)
	mugLine := store.addCartItem(user.ID, mug.ID, 4)
	teaLine := store.addCartItem(user.ID, tea.ID, 1)

	itemIDs := []uuid.UUID{uuid.New(), uuid.New()}
	orderID := uuid.New()
	converter := NewCartSnapshotConverter(sequentialIDs(itemIDs...))

	snapshot, err := converter.Convert(ctx, store, user.ID, orderID, baseTime)
	require.NoError(t, err)

	assert.Equal(t, user.ID, snapshot.UserID)
	assert.Equal(t, []uuid.UUID{mugLine.ID, teaLine.ID}, snapshot.CartItemIDs)
	assert.Equal(t, []domain.OrderItem{
		{ID: itemIDs[0], OrderID: orderID, ProductID: mug.ID, Quantity: 4, PriceAtPurchase: mug.Price, CreatedAt: baseTime},
		{ID: itemIDs[1], OrderID: orderID, ProductID: tea.ID, Quantity: 1, PriceAtPurchase: tea.Price, CreatedAt: baseTime},
	}, snapshot.Items)

	// conversion does not touch the cart
	assert.Len(t, store.carts[user.ID], 2)
	assert.Zero(t, store.calls["DeleteItems"])
}

func TestCartSnapshotConverter_Consume(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	converter := NewCartSnapshotConverter(nil)

	user := store.addUser(domain.RoleUser)
	product := store.addProduct("1.00", currency.USD, domain.ProductStatusAvailable)
	line := store.addCartItem(user.ID, product.ID, 1)

	snapshot, err := converter.Convert(ctx, store, user.ID, uuid.New(), baseTime)
	require.NoError(t, err)

	// an item added after the snapshot survives consumption
	late := store.addCartItem(user.ID, store.addProduct("2.00", currency.USD, domain.ProductStatusAvailable).ID, 1)

	require.NoError(t, converter.Consume(ctx, store.Carts(), snapshot))

	remaining := lo.Map(store.carts[user.ID], func(item domain.CartItem, _ int) uuid.UUID { return item.ID })
	assert.Equal(t, []uuid.UUID{late.ID}, remaining)
	assert.NotContains(t, remaining, line.ID)
}

func TestCartSnapshotConverter_Consume_Shortfall(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	converter := NewCartSnapshotConverter(nil)

	user := store.addUser(domain.RoleUser)
	store.addCartItem(user.ID, store.addProduct("1.00", currency.USD, domain.ProductStatusAvailable).ID, 1)

	snapshot, err := converter.Convert(ctx, store, user.ID, uuid.New(), baseTime)
	require.NoError(t, err)

	store.deleteShortfall = 1

	err = converter.Consume(ctx, store.Carts(), snapshot)
	require.EqualError(t, err, fmt.Sprintf("cart of user[%s] changed during checkout: deleted 0 of 1 items", user.ID))
}

func TestOwnershipGuard_Check(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	guard := OwnershipGuard{}

	owner := store.addUser(domain.RoleUser)
	admin := store.addUser(domain.RoleAdmin)
	order := store.addOrder(owner.ID, domain.OrderStatusCreated, baseTime)
	orphan := store.addOrder(uuid.MustParse("5e0d8c4b-2a11-4f0e-8d0b-3c1a9e6f7b22"), domain.OrderStatusCreated, baseTime)

	tests := []struct {
		name      string
		requester domain.Requester
		order     domain.Order
		wantError string
	}{
		{
			name:      "owner",
			requester: requesterOf(owner),
			order:     order,
		},
		{
			name:      "elevated role is not the owner",
			requester: requesterOf(admin),
			order:     order,
			wantError: fmt.Sprintf("User with email: %s has no access to order with id: %s.", admin.Email, order.ID),
		},
		{
			name:      "email match is exact",
			requester: domain.Requester{Email: " " + owner.Email, Role: domain.RoleUser},
			order:     order,
			wantError: fmt.Sprintf("User with email:  %s has no access to order with id: %s.", owner.Email, order.ID),
		},
		{
			name:      "owner missing",
			requester: requesterOf(owner),
			order:     orphan,
			wantError: "User with id: 5e0d8c4b-2a11-4f0e-8d0b-3c1a9e6f7b22 not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := guard.Check(ctx, store.Users(), tt.requester, tt.order)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
