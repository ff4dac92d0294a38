package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/port"
	"go.uber.org/zap"
)

type OrderServiceDeps struct {
	Store      port.Store
	Logger     *zap.Logger
	Clock      func() time.Time
	NewID      func() uuid.UUID
	PageLimits domain.PageLimits
}

// OrderService runs the order workflow on top of a transactional store.
type OrderService struct {
	store     port.Store
	converter CartSnapshotConverter
	guard     OwnershipGuard
	logger    *zap.Logger
	clock     func() time.Time
	newID     func() uuid.UUID
	limits    domain.PageLimits
}

func NewOrderService(deps OrderServiceDeps) (*OrderService, error) {
	if deps.Store == nil {
		return nil, errors.New("store is nil")
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	newID := deps.NewID
	if newID == nil {
		newID = uuid.New
	}

	limits := deps.PageLimits
	if limits.DefaultSize <= 0 {
		limits.DefaultSize = domain.DefaultPageSize
	}
	if limits.MaxSize <= 0 {
		limits.MaxSize = domain.DefaultMaxSize
	}

	return &OrderService{
		store:     deps.Store,
		converter: NewCartSnapshotConverter(newID),
		logger:    logger.Named("order-service"),
		clock:     clock,
		newID:     newID,
		limits:    limits,
	}, nil
}

// ListOrders returns a page of all orders, or of one user's orders when req.UserID is set.
func (s *OrderService) ListOrders(ctx context.Context, req ListOrdersRequest) (PageResponse[OrderSummaryResponse], error) {
	var resp PageResponse[OrderSummaryResponse]

	var userID *uuid.UUID
	if req.UserID != "" {
		id, err := domain.ParseID(req.UserID)
		if err != nil {
			return resp, err
		}
		userID = &id
	}

	pageReq, err := domain.ParsePageRequest(req.Page, req.Size, req.Direction, req.SortField, s.limits)
	if err != nil {
		return resp, err
	}

	if userID != nil {
		exists, err := s.store.Users().ExistsUser(ctx, *userID)
		if err != nil {
			return resp, fmt.Errorf("users.ExistsUser: %w", err)
		}
		if !exists {
			return resp, domain.NotFoundf("User with id: %s not found.", *userID)
		}
	}

	page, err := s.store.Orders().ListOrders(ctx, domain.OrderPageQuery{UserID: userID, PageRequest: pageReq})
	if err != nil {
		return resp, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return toPageResponse(page, toOrderSummaryResponse), nil
}

// ListMyOrders returns a page of the requester's own orders.
func (s *OrderService) ListMyOrders(ctx context.Context, requester domain.Requester, req ListOrdersRequest) (PageResponse[OrderSummaryResponse], error) {
	var resp PageResponse[OrderSummaryResponse]

	pageReq, err := domain.ParsePageRequest(req.Page, req.Size, req.Direction, req.SortField, s.limits)
	if err != nil {
		return resp, err
	}

	user, err := s.userByEmail(ctx, s.store.Users(), requester.Email)
	if err != nil {
		return resp, err
	}

	page, err := s.store.Orders().ListOrders(ctx, domain.OrderPageQuery{UserID: &user.ID, PageRequest: pageReq})
	if err != nil {
		return resp, fmt.Errorf("orders.ListOrders: %w", err)
	}

	return toPageResponse(page, toOrderSummaryResponse), nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, orderID string) (OrderResponse, error) {
	id, err := domain.ParseID(orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	order, err := s.getOrder(ctx, s.store.Orders(), id)
	if err != nil {
		return OrderResponse{}, err
	}

	return toOrderResponse(order), nil
}

func (s *OrderService) GetMyOrderByID(ctx context.Context, requester domain.Requester, orderID string) (OrderResponse, error) {
	id, err := domain.ParseID(orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	order, err := s.getOwnedOrder(ctx, s.store, requester, id)
	if err != nil {
		return OrderResponse{}, err
	}

	return toOrderResponse(order), nil
}

func (s *OrderService) GetOrderStatus(ctx context.Context, orderID string) (MessageResponse, error) {
	id, err := domain.ParseID(orderID)
	if err != nil {
		return MessageResponse{}, err
	}

	order, err := s.getOrder(ctx, s.store.Orders(), id)
	if err != nil {
		return MessageResponse{}, err
	}

	return statusMessage(order), nil
}

func (s *OrderService) GetMyOrderStatus(ctx context.Context, requester domain.Requester, orderID string) (MessageResponse, error) {
	id, err := domain.ParseID(orderID)
	if err != nil {
		return MessageResponse{}, err
	}

	order, err := s.getOwnedOrder(ctx, s.store, requester, id)
	if err != nil {
		return MessageResponse{}, err
	}

	return statusMessage(order), nil
}

// CreateOrder converts the requester's cart into a CREATED order and empties the cart.
// Order insertion and cart consumption commit together or not at all.
func (s *OrderService) CreateOrder(ctx context.Context, requester domain.Requester, req CreateOrderRequest) (OrderResponse, error) {
	method, err := domain.ToDeliveryMethod(req.DeliveryMethod)
	if err != nil {
		return OrderResponse{}, err
	}

	var created domain.Order

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		user, err := s.userByEmail(ctx, repos.Users(), requester.Email)
		if err != nil {
			return err
		}

		now := s.now()
		orderID := s.newID()

		snapshot, err := s.converter.Convert(ctx, repos, user.ID, orderID, now)
		if err != nil {
			return err
		}

		order := domain.Order{
			ID:             orderID,
			UserID:         user.ID,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Address:        req.Address,
			ZipCode:        req.ZipCode,
			City:           req.City,
			Phone:          req.Phone,
			DeliveryMethod: method,
			Status:         domain.OrderStatusCreated,
			Items:          snapshot.Items,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if _, err := repos.Orders().InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("orders.InsertOrder: %w", err)
		}

		if err := s.converter.Consume(ctx, repos.Carts(), snapshot); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.logger.Info("order.created",
		zap.String("order_id", created.ID.String()),
		zap.String("user_id", created.UserID.String()),
		zap.Int("items", len(created.Items)),
	)

	return toOrderResponse(created), nil
}

// UpdateOrder applies a partial edit of shipping details to the requester's CREATED order.
func (s *OrderService) UpdateOrder(ctx context.Context, requester domain.Requester, orderID string, req UpdateOrderRequest) (OrderResponse, error) {
	id, err := domain.ParseID(orderID)
	if err != nil {
		return OrderResponse{}, err
	}

	update, err := toOrderUpdate(req)
	if err != nil {
		return OrderResponse{}, err
	}

	var updated domain.Order

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		order, err := s.getOwnedOrder(ctx, repos, requester, id)
		if err != nil {
			return err
		}

		if err := order.ApplyUpdate(update, s.now()); err != nil {
			return err
		}

		if err := s.saveOrder(ctx, repos.Orders(), order); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return OrderResponse{}, err
	}

	s.logger.Info("order.updated", zap.String("order_id", updated.ID.String()))

	return toOrderResponse(updated), nil
}

// CancelOrder cancels the requester's order while it is still CREATED or PAID.
func (s *OrderService) CancelOrder(ctx context.Context, requester domain.Requester, orderID string) (MessageResponse, error) {
	id, err := domain.ParseID(orderID)
	if err != nil {
		return MessageResponse{}, err
	}

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		order, err := s.getOwnedOrder(ctx, repos, requester, id)
		if err != nil {
			return err
		}

		if err := order.Cancel(s.now()); err != nil {
			return err
		}

		return s.saveOrder(ctx, repos.Orders(), order)
	})
	if err != nil {
		return MessageResponse{}, err
	}

	s.logger.Info("order.canceled", zap.String("order_id", id.String()))

	return MessageResponse{Message: fmt.Sprintf("Order with id: %s was canceled.", id)}, nil
}

// ToggleOrderStatus advances an order one step along its forward chain.
func (s *OrderService) ToggleOrderStatus(ctx context.Context, orderID string) (MessageResponse, error) {
	id, err := domain.ParseID(orderID)
	if err != nil {
		return MessageResponse{}, err
	}

	var from, to domain.OrderStatus

	err = s.store.WithinTx(ctx, func(ctx context.Context, repos port.Repositories) error {
		order, err := s.getOrder(ctx, repos.Orders(), id)
		if err != nil {
			return err
		}

		from, to, err = order.Advance(s.now())
		if err != nil {
			return err
		}

		return s.saveOrder(ctx, repos.Orders(), order)
	})
	if err != nil {
		return MessageResponse{}, err
	}

	s.logger.Info("order.status.changed",
		zap.String("order_id", id.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)

	return MessageResponse{Message: fmt.Sprintf("Order with id: %s status changed: %s -> %s.", id, from, to)}, nil
}

func (s *OrderService) now() time.Time {
	return s.clock().UTC().Truncate(time.Microsecond)
}

func (s *OrderService) getOrder(ctx context.Context, orders port.OrderRepository, id uuid.UUID) (domain.Order, error) {
	order, err := orders.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, domain.NotFoundf("Order with id: %s not found.", id)
		}
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}
	return order, nil
}

func (s *OrderService) getOwnedOrder(ctx context.Context, repos port.Repositories, requester domain.Requester, id uuid.UUID) (domain.Order, error) {
	if requester.Email == "" {
		return domain.Order{}, domain.AccessDeniedf("Requester email is empty.")
	}

	order, err := s.getOrder(ctx, repos.Orders(), id)
	if err != nil {
		return domain.Order{}, err
	}

	if err := s.guard.Check(ctx, repos.Users(), requester, order); err != nil {
		return domain.Order{}, err
	}

	return order, nil
}

func (s *OrderService) saveOrder(ctx context.Context, orders port.OrderRepository, order domain.Order) error {
	if err := orders.UpdateOrder(ctx, order); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundf("Order with id: %s not found.", order.ID)
		}
		return fmt.Errorf("orders.UpdateOrder: %w", err)
	}
	return nil
}

func (s *OrderService) userByEmail(ctx context.Context, users port.UserRepository, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, domain.AccessDeniedf("Requester email is empty.")
	}

	user, err := users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.NotFoundf("User with email: %s not found.", email)
		}
		return domain.User{}, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	return user, nil
}

func statusMessage(order domain.Order) MessageResponse {
	return MessageResponse{Message: fmt.Sprintf("Order with id: %s is in status %s.", order.ID, order.Status)}
}
