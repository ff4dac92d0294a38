package service

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/port"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// fakeStore is an in-memory port.Store. WithinTx restores the previous state when fn fails.
type fakeStore struct {
	mu sync.Mutex

	orders   map[uuid.UUID]domain.Order
	carts    map[uuid.UUID][]domain.CartItem
	users    map[uuid.UUID]domain.User
	products map[uuid.UUID]domain.Product

	// deleteShortfall makes DeleteItems report fewer deleted rows than requested.
	deleteShortfall int64

	calls   map[string]int
	txCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		orders:   map[uuid.UUID]domain.Order{},
		carts:    map[uuid.UUID][]domain.CartItem{},
		users:    map[uuid.UUID]domain.User{},
		products: map[uuid.UUID]domain.Product{},
		calls:    map[string]int{},
	}
}

func (s *fakeStore) Orders() port.OrderRepository     { return fakeOrders{s} }
func (s *fakeStore) Carts() port.CartRepository       { return fakeCarts{s} }
func (s *fakeStore) Users() port.UserRepository       { return fakeUsers{s} }
func (s *fakeStore) Products() port.ProductRepository { return fakeProducts{s} }

func (s *fakeStore) WithinTx(ctx context.Context, fn func(ctx context.Context, repos port.Repositories) error) error {
	s.mu.Lock()
	s.txCalls++
	orders := maps.Clone(s.orders)
	carts := maps.Clone(s.carts)
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.orders = orders
		s.carts = carts
		s.mu.Unlock()
		return err
	}

	return nil
}

// repoCalls is the number of repository calls made so far, transactions included.
func (s *fakeStore) repoCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.txCalls
	for _, n := range s.calls {
		total += n
	}
	return total
}

// callCount is the number of calls made to a single repository method.
func (s *fakeStore) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls[name]
}

func (s *fakeStore) called(name string) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()
}

type fakeOrders struct{ s *fakeStore }

func (f fakeOrders) GetOrder(_ context.Context, orderID uuid.UUID) (domain.Order, error) {
	f.s.called("GetOrder")
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty: %w", domain.ErrNotFound)
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	order, ok := f.s.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("fake.GetOrder: %w", domain.ErrNotFound)
	}
	return order, nil
}

func (f fakeOrders) ListOrders(_ context.Context, query domain.OrderPageQuery) (domain.Page[domain.Order], error) {
	f.s.called("ListOrders")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	all := lo.Filter(lo.Values(f.s.orders), func(o domain.Order, _ int) bool {
		return query.UserID == nil || o.UserID == *query.UserID
	})

	slices.SortFunc(all, func(a, b domain.Order) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if c == 0 {
			c = cmp.Compare(a.ID.String(), b.ID.String())
		}
		if query.Direction == domain.SortDirectionDesc {
			return -c
		}
		return c
	})

	start := min(query.Offset(), len(all))
	end := min(start+query.Size, len(all))

	return domain.Page[domain.Order]{
		Items:      all[start:end],
		Page:       query.Page,
		Size:       query.Size,
		TotalItems: int64(len(all)),
	}, nil
}

func (f fakeOrders) InsertOrder(_ context.Context, order domain.Order) (uuid.UUID, error) {
	f.s.called("InsertOrder")
	if err := order.Validate(); err != nil {
		return uuid.Nil, err
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	f.s.orders[order.ID] = order
	return order.ID, nil
}

func (f fakeOrders) UpdateOrder(_ context.Context, order domain.Order) error {
	f.s.called("UpdateOrder")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	existing, ok := f.s.orders[order.ID]
	if !ok {
		return fmt.Errorf("fake.UpdateOrder: %w", domain.ErrNotFound)
	}

	order.Items = existing.Items
	f.s.orders[order.ID] = order
	return nil
}

type fakeCarts struct{ s *fakeStore }

func (f fakeCarts) GetCart(_ context.Context, userID uuid.UUID) (domain.Cart, error) {
	f.s.called("GetCart")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	return domain.Cart{UserID: userID, Items: slices.Clone(f.s.carts[userID])}, nil
}

func (f fakeCarts) AddItem(_ context.Context, userID uuid.UUID, item domain.CartItem) error {
	f.s.called("AddItem")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	f.s.carts[userID] = append(slices.Clone(f.s.carts[userID]), item)
	return nil
}

func (f fakeCarts) DeleteItems(_ context.Context, userID uuid.UUID, itemIDs []uuid.UUID) (int64, error) {
	f.s.called("DeleteItems")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	before := len(f.s.carts[userID])
	f.s.carts[userID] = lo.Reject(f.s.carts[userID], func(item domain.CartItem, _ int) bool {
		return slices.Contains(itemIDs, item.ID)
	})

	return int64(before-len(f.s.carts[userID])) - f.s.deleteShortfall, nil
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) GetUser(_ context.Context, userID uuid.UUID) (domain.User, error) {
	f.s.called("GetUser")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	user, ok := f.s.users[userID]
	if !ok {
		return domain.User{}, fmt.Errorf("fake.GetUser: %w", domain.ErrNotFound)
	}
	return user, nil
}

func (f fakeUsers) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	f.s.called("GetUserByEmail")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	user, ok := lo.Find(lo.Values(f.s.users), func(u domain.User) bool { return u.Email == email })
	if !ok {
		return domain.User{}, fmt.Errorf("fake.GetUserByEmail: %w", domain.ErrNotFound)
	}
	return user, nil
}

func (f fakeUsers) ExistsUser(_ context.Context, userID uuid.UUID) (bool, error) {
	f.s.called("ExistsUser")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	_, ok := f.s.users[userID]
	return ok, nil
}

type fakeProducts struct{ s *fakeStore }

func (f fakeProducts) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	f.s.called("GetProduct")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	product, ok := f.s.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("fake.GetProduct: %w", domain.ErrNotFound)
	}
	return product, nil
}

func (f fakeProducts) GetProducts(_ context.Context, productIDs []uuid.UUID) ([]domain.Product, error) {
	f.s.called("GetProducts")
	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	return lo.FilterMap(lo.Uniq(productIDs), func(id uuid.UUID, _ int) (domain.Product, bool) {
		p, ok := f.s.products[id]
		return p, ok
	}), nil
}

var baseTime = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return baseTime }

func (s *fakeStore) addUser(role domain.Role) domain.User {
	user := domain.User{
		ID:        uuid.New(),
		Email:     gofakeit.Email(),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      role,
		CreatedAt: baseTime,
	}
	s.users[user.ID] = user
	return user
}

func (s *fakeStore) addProduct(price string, unit currency.Unit, status domain.ProductStatus) domain.Product {
	product := domain.Product{
		ID:        uuid.New(),
		Name:      gofakeit.ProductName(),
		Price:     domain.Money{Amount: decimal.RequireFromString(price), Currency: unit},
		Status:    status,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
	s.products[product.ID] = product
	return product
}

func (s *fakeStore) addCartItem(userID, productID uuid.UUID, quantity int) domain.CartItem {
	item := domain.CartItem{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: baseTime,
	}
	s.carts[userID] = append(s.carts[userID], item)
	return item
}

func (s *fakeStore) addOrder(userID uuid.UUID, status domain.OrderStatus, createdAt time.Time) domain.Order {
	orderID := uuid.New()
	order := domain.Order{
		ID:             orderID,
		UserID:         userID,
		FirstName:      gofakeit.FirstName(),
		LastName:       gofakeit.LastName(),
		Address:        gofakeit.Street(),
		ZipCode:        gofakeit.Zip(),
		City:           gofakeit.City(),
		Phone:          gofakeit.Phone(),
		DeliveryMethod: domain.DeliveryMethodCourier,
		Status:         status,
		Items: []domain.OrderItem{{
			ID:              uuid.New(),
			OrderID:         orderID,
			ProductID:       uuid.New(),
			Quantity:        2,
			PriceAtPurchase: domain.Money{Amount: decimal.RequireFromString("12.50"), Currency: currency.EUR},
			CreatedAt:       createdAt,
		}},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	s.orders[order.ID] = order
	return order
}

func requesterOf(user domain.User) domain.Requester {
	return domain.Requester{Email: user.Email, Role: user.Role}
}
