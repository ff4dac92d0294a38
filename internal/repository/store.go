package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderflow/internal/db"
	"github.com/nikolayk812/orderflow/internal/port"
)

type store struct {
	dbtx db.DBTX

	orders   port.OrderRepository
	carts    port.CartRepository
	users    port.UserRepository
	products port.ProductRepository
}

func NewStore(pool *pgxpool.Pool) port.Store {
	return newStore(pool)
}

func newStore(dbtx db.DBTX) *store {
	return &store{
		dbtx:     dbtx,
		orders:   newOrderRepository(dbtx),
		carts:    newCartRepository(dbtx),
		users:    newUserRepository(dbtx),
		products: newProductRepository(dbtx),
	}
}

func (s *store) Orders() port.OrderRepository     { return s.orders }
func (s *store) Carts() port.CartRepository       { return s.carts }
func (s *store) Users() port.UserRepository       { return s.users }
func (s *store) Products() port.ProductRepository { return s.products }

func (s *store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	_, err := withTx(ctx, s.dbtx, func(tx db.DBTX) (struct{}, error) {
		return struct{}{}, fn(ctx, newStore(tx))
	})
	return err
}
