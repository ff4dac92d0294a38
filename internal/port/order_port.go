package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderflow/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)

	ListOrders(ctx context.Context, query domain.OrderPageQuery) (domain.Page[domain.Order], error)

	InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error)

	UpdateOrder(ctx context.Context, order domain.Order) error
}

type CartRepository interface {
	GetCart(ctx context.Context, userID uuid.UUID) (domain.Cart, error)

	AddItem(ctx context.Context, userID uuid.UUID, item domain.CartItem) error

	// DeleteItems removes the given cart items of the user and reports how many were deleted.
	DeleteItems(ctx context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error)
}

type UserRepository interface {
	GetUser(ctx context.Context, userID uuid.UUID) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	ExistsUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	GetProducts(ctx context.Context, productIDs []uuid.UUID) ([]domain.Product, error)
}

type Repositories interface {
	Orders() OrderRepository
	Carts() CartRepository
	Users() UserRepository
	Products() ProductRepository
}

// Store exposes the repositories outside of a transaction and runs fn inside one.
// fn's repositories are bound to the transaction, which commits only if fn returns nil.
type Store interface {
	Repositories

	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
