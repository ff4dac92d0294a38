package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/port"
	"github.com/samber/lo"
)

// CartSnapshot is the priced content of a cart at checkout time.
type CartSnapshot struct {
	UserID      uuid.UUID
	Items       []domain.OrderItem
	CartItemIDs []uuid.UUID
}

// CartSnapshotConverter turns cart items into order items priced at the current product price.
type CartSnapshotConverter struct {
	newID func() uuid.UUID
}

func NewCartSnapshotConverter(newID func() uuid.UUID) CartSnapshotConverter {
	if newID == nil {
		newID = uuid.New
	}
	return CartSnapshotConverter{newID: newID}
}

// Convert reads the user's cart and freezes quantity and price of every line into an order item.
func (c CartSnapshotConverter) Convert(ctx context.Context, repos port.Repositories, userID, orderID uuid.UUID, now time.Time) (CartSnapshot, error) {
	var snapshot CartSnapshot

	cart, err := repos.Carts().GetCart(ctx, userID)
	if err != nil {
		return snapshot, fmt.Errorf("carts.GetCart: %w", err)
	}

	if cart.IsEmpty() {
		return snapshot, domain.InvalidArgumentf("Cannot place order: empty cart.")
	}

	productIDs := lo.Map(cart.Items, func(item domain.CartItem, _ int) uuid.UUID { return item.ProductID })

	products, err := repos.Products().GetProducts(ctx, productIDs)
	if err != nil {
		return snapshot, fmt.Errorf("products.GetProducts: %w", err)
	}

	productsByID := lo.KeyBy(products, func(p domain.Product) uuid.UUID { return p.ID })

	snapshot.UserID = userID
	snapshot.Items = make([]domain.OrderItem, 0, len(cart.Items))
	snapshot.CartItemIDs = make([]uuid.UUID, 0, len(cart.Items))

	for _, cartItem := range cart.Items {
		product, ok := productsByID[cartItem.ProductID]
		if !ok {
			return CartSnapshot{}, domain.NotFoundf("Product with id: %s not found.", cartItem.ProductID)
		}

		if product.Status != domain.ProductStatusAvailable {
			return CartSnapshot{}, domain.InvalidArgumentf("Product with id: %s is not available.", product.ID)
		}

		if len(snapshot.Items) > 0 && snapshot.Items[0].PriceAtPurchase.Currency != product.Price.Currency {
			return CartSnapshot{}, domain.InvalidArgumentf("Cannot place order: cart contains items in different currencies.")
		}

		snapshot.Items = append(snapshot.Items, domain.OrderItem{
			ID:              c.newID(),
			OrderID:         orderID,
			ProductID:       product.ID,
			Quantity:        cartItem.Quantity,
			PriceAtPurchase: product.Price,
			CreatedAt:       now,
		})
		snapshot.CartItemIDs = append(snapshot.CartItemIDs, cartItem.ID)
	}

	return snapshot, nil
}

// Consume deletes the snapshotted cart items. Deleting fewer items than were
// snapshotted means the cart changed underneath the checkout and fails the transaction.
func (c CartSnapshotConverter) Consume(ctx context.Context, carts port.CartRepository, snapshot CartSnapshot) error {
	deleted, err := carts.DeleteItems(ctx, snapshot.UserID, snapshot.CartItemIDs)
	if err != nil {
		return fmt.Errorf("carts.DeleteItems: %w", err)
	}

	if deleted != int64(len(snapshot.CartItemIDs)) {
		return fmt.Errorf("cart of user[%s] changed during checkout: deleted %d of %d items", snapshot.UserID, deleted, len(snapshot.CartItemIDs))
	}

	return nil
}
