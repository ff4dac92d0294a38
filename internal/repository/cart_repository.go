package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderflow/internal/db"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/port"
	"github.com/samber/lo"
)

type cartRepository struct {
	q *db.Queries
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return newCartRepository(pool)
}

func newCartRepository(dbtx db.DBTX) *cartRepository {
	return &cartRepository{
		q: db.New(dbtx),
	}
}

func (r *cartRepository) GetCart(ctx context.Context, userID uuid.UUID) (domain.Cart, error) {
	var c domain.Cart

	dbCartItems, err := r.q.GetCart(ctx, userID)
	if err != nil {
		return c, fmt.Errorf("q.GetCart: %w", err)
	}

	return domain.Cart{
		UserID: userID,
		Items:  lo.Map(dbCartItems, mapGetCartRowToDomain),
	}, nil
}

// AddItem puts a product into the cart, adding to the quantity when the product is already there.
func (r *cartRepository) AddItem(ctx context.Context, userID uuid.UUID, item domain.CartItem) error {
	if item.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	arg := db.AddItemParams{
		ID:        item.ID,
		UserID:    userID,
		ProductID: item.ProductID,
		Quantity:  int32(item.Quantity),
	}

	if err := r.q.AddItem(ctx, arg); err != nil {
		return fmt.Errorf("q.AddItem: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}

	arg := db.DeleteItemsParams{
		UserID: userID,
		Ids:    itemIDs,
	}

	rowsAffected, err := r.q.DeleteItems(ctx, arg)
	if err != nil {
		return 0, fmt.Errorf("q.DeleteItems: %w", err)
	}

	return rowsAffected, nil
}

func mapGetCartRowToDomain(row db.GetCartRow, _ int) domain.CartItem {
	return domain.CartItem{
		ID:        row.ID,
		ProductID: row.ProductID,
		Quantity:  int(row.Quantity),
		CreatedAt: row.CreatedAt,
	}
}
