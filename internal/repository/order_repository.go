package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/orderflow/internal/db"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/port"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

var orderColumns = []string{
	"id", "user_id", "first_name", "last_name", "address", "zip_code", "city", "phone",
	"delivery_method", "status", "created_at", "updated_at",
}

type orderRepository struct {
	dbtx db.DBTX
	q    *db.Queries
	sb   sq.StatementBuilderType
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return newOrderRepository(pool)
}

func newOrderRepository(dbtx db.DBTX) *orderRepository {
	return &orderRepository{
		dbtx: dbtx,
		q:    db.New(dbtx),
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	var o domain.Order

	if orderID == uuid.Nil {
		return o, fmt.Errorf("orderID is empty: %w", domain.ErrNotFound)
	}

	order, err := withTx(ctx, r.dbtx, func(tx db.DBTX) (domain.Order, error) {
		q := db.New(tx)

		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return o, fmt.Errorf("q.GetOrder: %w", domain.ErrNotFound)
			}
			return o, fmt.Errorf("q.GetOrder: %w", err)
		}

		dbOrderItems, err := q.GetOrderItems(ctx, orderID)
		if err != nil {
			return o, fmt.Errorf("q.GetOrderItems: %w", err)
		}

		domainOrder, err := mapDBOrderToDomain(dbOrder, dbOrderItems)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}

		return domainOrder, nil
	})
	if err != nil {
		return o, fmt.Errorf("withTx: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, query domain.OrderPageQuery) (domain.Page[domain.Order], error) {
	var page domain.Page[domain.Order]

	if err := query.Validate(); err != nil {
		return page, fmt.Errorf("query.Validate: %w", err)
	}

	column, _ := domain.OrderSortColumn(query.SortField)
	direction := string(query.Direction)

	countBuilder := r.sb.Select("COUNT(*)").From("orders")
	selectBuilder := r.sb.Select(orderColumns...).
		From("orders").
		OrderBy(column+" "+direction, "id "+direction).
		Limit(uint64(query.Size)).
		Offset(uint64(query.Offset()))

	if query.UserID != nil {
		countBuilder = countBuilder.Where(sq.Eq{"user_id": *query.UserID})
		selectBuilder = selectBuilder.Where(sq.Eq{"user_id": *query.UserID})
	}

	countSQL, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return page, fmt.Errorf("countBuilder.ToSql: %w", err)
	}

	selectSQL, selectArgs, err := selectBuilder.ToSql()
	if err != nil {
		return page, fmt.Errorf("selectBuilder.ToSql: %w", err)
	}

	// count and rows are read in one transaction to keep them consistent
	page, err = withTx(ctx, r.dbtx, func(tx db.DBTX) (domain.Page[domain.Order], error) {
		var result domain.Page[domain.Order]

		if err := tx.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalItems); err != nil {
			return result, fmt.Errorf("count orders: %w", err)
		}

		rows, err := tx.Query(ctx, selectSQL, selectArgs...)
		if err != nil {
			return result, fmt.Errorf("select orders: %w", err)
		}

		dbOrders, err := pgx.CollectRows(rows, pgx.RowToStructByPos[db.Order])
		if err != nil {
			return result, fmt.Errorf("pgx.CollectRows: %w", err)
		}

		orderIDs := lo.Map(dbOrders, func(o db.Order, _ int) uuid.UUID { return o.ID })

		var dbOrderItems []db.OrderItem
		if len(orderIDs) > 0 {
			dbOrderItems, err = db.New(tx).GetOrderItemsByOrderIDs(ctx, orderIDs)
			if err != nil {
				return result, fmt.Errorf("q.GetOrderItemsByOrderIDs: %w", err)
			}
		}

		itemsByOrder := lo.GroupBy(dbOrderItems, func(item db.OrderItem) uuid.UUID { return item.OrderID })

		for _, dbOrder := range dbOrders {
			order, err := mapDBOrderToDomain(dbOrder, itemsByOrder[dbOrder.ID])
			if err != nil {
				return result, fmt.Errorf("mapDBOrderToDomain: %w", err)
			}
			result.Items = append(result.Items, order)
		}

		return result, nil
	})
	if err != nil {
		return page, fmt.Errorf("withTx: %w", err)
	}

	page.Page = query.Page
	page.Size = query.Size

	return page, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (uuid.UUID, error) {
	if order.ID == uuid.Nil {
		return uuid.Nil, errors.New("orderID is empty")
	}

	if err := order.Validate(); err != nil {
		return uuid.Nil, err
	}

	orderID, err := withTx(ctx, r.dbtx, func(tx db.DBTX) (uuid.UUID, error) {
		q := db.New(tx)

		err := q.InsertOrder(ctx, db.InsertOrderParams{
			ID:             order.ID,
			UserID:         order.UserID,
			FirstName:      order.FirstName,
			LastName:       order.LastName,
			Address:        order.Address,
			ZipCode:        order.ZipCode,
			City:           order.City,
			Phone:          order.Phone,
			DeliveryMethod: string(order.DeliveryMethod),
			Status:         string(order.Status),
			CreatedAt:      order.CreatedAt,
			UpdatedAt:      order.UpdatedAt,
		})
		if err != nil {
			return uuid.Nil, fmt.Errorf("q.InsertOrder: %w", err)
		}

		// TODO: batch the item inserts with pgx.Batch once carts grow beyond a handful of lines
		for _, item := range order.Items {
			arg := db.InsertOrderItemParams{
				ID:            item.ID,
				OrderID:       order.ID,
				ProductID:     item.ProductID,
				Quantity:      int32(item.Quantity),
				PriceAmount:   item.PriceAtPurchase.Amount,
				PriceCurrency: item.PriceAtPurchase.Currency.String(),
				CreatedAt:     item.CreatedAt,
			}
			if err := q.InsertOrderItem(ctx, arg); err != nil {
				return uuid.Nil, fmt.Errorf("q.InsertOrderItem: %w", err)
			}
		}

		return order.ID, nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("withTx: %w", err)
	}

	return orderID, nil
}

// UpdateOrder persists the mutable part of an order: shipping fields, delivery method,
// status and updatedAt. Items are never rewritten.
func (r *orderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("orderID is empty: %w", domain.ErrNotFound)
	}

	if order.Status == "" {
		return fmt.Errorf("status is empty")
	}

	cmdTag, err := r.q.UpdateOrder(ctx, db.UpdateOrderParams{
		ID:             order.ID,
		FirstName:      order.FirstName,
		LastName:       order.LastName,
		Address:        order.Address,
		ZipCode:        order.ZipCode,
		City:           order.City,
		Phone:          order.Phone,
		DeliveryMethod: string(order.DeliveryMethod),
		Status:         string(order.Status),
		UpdatedAt:      order.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrder: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("q.UpdateOrder: %w", domain.ErrNotFound)
	}

	return nil
}

func mapDBOrderItemToDomain(row db.OrderItem) (domain.OrderItem, error) {
	parsedCurrency, err := currency.ParseISO(row.PriceCurrency)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.OrderItem{
		ID:              row.ID,
		OrderID:         row.OrderID,
		ProductID:       row.ProductID,
		Quantity:        int(row.Quantity),
		PriceAtPurchase: domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		CreatedAt:       row.CreatedAt,
	}, nil
}

func mapDBOrderItemsToDomain(rows []db.OrderItem) ([]domain.OrderItem, error) {
	var items []domain.OrderItem

	for _, row := range rows {
		item, err := mapDBOrderItemToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapDBOrderItemToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbOrderItems []db.OrderItem) (domain.Order, error) {
	var o domain.Order

	items, err := mapDBOrderItemsToDomain(dbOrderItems)
	if err != nil {
		return o, fmt.Errorf("mapDBOrderItemsToDomain: %w", err)
	}

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	deliveryMethod, err := domain.ToDeliveryMethod(dbOrder.DeliveryMethod)
	if err != nil {
		return o, fmt.Errorf("domain.ToDeliveryMethod[%s]: %w", dbOrder.DeliveryMethod, err)
	}

	return domain.Order{
		ID:             dbOrder.ID,
		UserID:         dbOrder.UserID,
		FirstName:      dbOrder.FirstName,
		LastName:       dbOrder.LastName,
		Address:        dbOrder.Address,
		ZipCode:        dbOrder.ZipCode,
		City:           dbOrder.City,
		Phone:          dbOrder.Phone,
		DeliveryMethod: deliveryMethod,
		Status:         status,
		Items:          items,
		CreatedAt:      dbOrder.CreatedAt,
		UpdatedAt:      dbOrder.UpdatedAt,
	}, nil
}
