package repository_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderflow/internal/config"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/postgres"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

// startPostgres runs a throwaway postgres container with the schema migrated.
func startPostgres(ctx context.Context) (testcontainers.Container, *pgxpool.Pool, error) {
	container, err := tcpostgres.Run(ctx, "postgres:17-alpine",
		tcpostgres.WithDatabase("orderflow"),
		tcpostgres.WithUsername("orderflow"),
		tcpostgres.WithPassword("orderflow"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("tcpostgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, fmt.Errorf("container.ConnectionString: %w", err)
	}

	pool, err := postgres.NewPool(ctx, config.Postgres{DSN: connStr, MaxConns: 5})
	if err != nil {
		return container, nil, fmt.Errorf("postgres.NewPool: %w", err)
	}

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return container, nil, fmt.Errorf("postgres.Migrate: %w", err)
	}

	return container, pool, nil
}

func truncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE TABLE order_items, orders, cart_items, products, users CASCADE")
	return err
}

func insertUser(ctx context.Context, pool *pgxpool.Pool, role domain.Role) (domain.User, error) {
	user := domain.User{
		ID:        uuid.New(),
		Email:     strings.ToLower(gofakeit.Email()),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Role:      role,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		"INSERT INTO users (id, email, first_name, last_name, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		user.ID, user.Email, user.FirstName, user.LastName, string(user.Role), user.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, price string, unit currency.Unit, status domain.ProductStatus) (domain.Product, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	product := domain.Product{
		ID:        uuid.New(),
		Name:      gofakeit.ProductName(),
		Price:     domain.Money{Amount: decimal.RequireFromString(price), Currency: unit},
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		"INSERT INTO products (id, name, price_amount, price_currency, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		product.ID, product.Name, product.Price.Amount, product.Price.Currency.String(), string(product.Status), product.CreatedAt, product.UpdatedAt)
	if err != nil {
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	return product, nil
}

func randomPrice() string {
	return decimal.NewFromFloat(gofakeit.Price(1, 100)).StringFixed(2)
}

// randomOrder builds a CREATED order of user with one item per product.
func randomOrder(userID uuid.UUID, createdAt time.Time, products ...domain.Product) domain.Order {
	createdAt = createdAt.UTC().Truncate(time.Microsecond)
	orderID := uuid.New()

	items := make([]domain.OrderItem, 0, len(products))
	for i, p := range products {
		items = append(items, domain.OrderItem{
			ID:              uuid.New(),
			OrderID:         orderID,
			ProductID:       p.ID,
			Quantity:        gofakeit.Number(1, 5),
			PriceAtPurchase: p.Price,
			CreatedAt:       createdAt.Add(time.Duration(i) * time.Microsecond),
		})
	}

	return domain.Order{
		ID:             orderID,
		UserID:         userID,
		FirstName:      gofakeit.FirstName(),
		LastName:       gofakeit.LastName(),
		Address:        gofakeit.Street(),
		ZipCode:        gofakeit.Zip(),
		City:           gofakeit.City(),
		Phone:          gofakeit.Phone(),
		DeliveryMethod: domain.DeliveryMethodCourier,
		Status:         domain.OrderStatusCreated,
		Items:          items,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	diff := cmp.Diff(expected, actual, currencyComparer, cmpopts.EquateEmpty())
	assert.Empty(t, diff)
}
