package service

import (
	"time"

	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/samber/lo"
)

type CreateOrderRequest struct {
	FirstName      string `json:"firstName" validate:"required,max=100"`
	LastName       string `json:"lastName" validate:"required,max=100"`
	Address        string `json:"address" validate:"required,max=255"`
	ZipCode        string `json:"zipCode" validate:"required,max=20"`
	City           string `json:"city" validate:"required,max=100"`
	Phone          string `json:"phone" validate:"required,max=32"`
	DeliveryMethod string `json:"deliveryMethod" validate:"required"`
}

// UpdateOrderRequest is a partial update: nil fields are left unchanged.
type UpdateOrderRequest struct {
	FirstName      *string `json:"firstName,omitempty" validate:"omitnil,min=1,max=100"`
	LastName       *string `json:"lastName,omitempty" validate:"omitnil,min=1,max=100"`
	Address        *string `json:"address,omitempty" validate:"omitnil,min=1,max=255"`
	ZipCode        *string `json:"zipCode,omitempty" validate:"omitnil,min=1,max=20"`
	City           *string `json:"city,omitempty" validate:"omitnil,min=1,max=100"`
	Phone          *string `json:"phone,omitempty" validate:"omitnil,min=1,max=32"`
	DeliveryMethod *string `json:"deliveryMethod,omitempty" validate:"omitnil,min=1"`
}

type ListOrdersRequest struct {
	UserID    string
	Page      int
	Size      int
	Direction string
	SortField string
}

type OrderResponse struct {
	OrderID        string              `json:"orderId"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	Address        string              `json:"address"`
	ZipCode        string              `json:"zipCode"`
	City           string              `json:"city"`
	Phone          string              `json:"phone"`
	DeliveryMethod string              `json:"deliveryMethod"`
	OrderStatus    string              `json:"orderStatus"`
	Items          []OrderItemResponse `json:"items"`
	TotalPrice     string              `json:"totalPrice,omitempty"`
	Currency       string              `json:"currency,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

type OrderItemResponse struct {
	ItemID          string `json:"itemId"`
	ProductID       string `json:"productId"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"priceAtPurchase"`
	Currency        string `json:"currency"`
}

type OrderSummaryResponse struct {
	OrderID        string    `json:"orderId"`
	OrderStatus    string    `json:"orderStatus"`
	DeliveryMethod string    `json:"deliveryMethod"`
	TotalPrice     string    `json:"totalPrice,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

func toOrderResponse(o domain.Order) OrderResponse {
	resp := OrderResponse{
		OrderID:        o.ID.String(),
		FirstName:      o.FirstName,
		LastName:       o.LastName,
		Address:        o.Address,
		ZipCode:        o.ZipCode,
		City:           o.City,
		Phone:          o.Phone,
		DeliveryMethod: string(o.DeliveryMethod),
		OrderStatus:    string(o.Status),
		Items:          lo.Map(o.Items, toOrderItemResponse),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}

	if total, err := o.Total(); err == nil {
		resp.TotalPrice = total.Amount.StringFixed(2)
		resp.Currency = total.Currency.String()
	}

	return resp
}

func toOrderItemResponse(item domain.OrderItem, _ int) OrderItemResponse {
	return OrderItemResponse{
		ItemID:          item.ID.String(),
		ProductID:       item.ProductID.String(),
		Quantity:        item.Quantity,
		PriceAtPurchase: item.PriceAtPurchase.Amount.StringFixed(2),
		Currency:        item.PriceAtPurchase.Currency.String(),
	}
}

func toOrderSummaryResponse(o domain.Order) OrderSummaryResponse {
	resp := OrderSummaryResponse{
		OrderID:        o.ID.String(),
		OrderStatus:    string(o.Status),
		DeliveryMethod: string(o.DeliveryMethod),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}

	if total, err := o.Total(); err == nil {
		resp.TotalPrice = total.Amount.StringFixed(2)
		resp.Currency = total.Currency.String()
	}

	return resp
}

func toPageResponse[T, R any](page domain.Page[T], fn func(T) R) PageResponse[R] {
	mapped := domain.MapPage(page, fn)

	return PageResponse[R]{
		Items:      mapped.Items,
		Page:       mapped.Page,
		Size:       mapped.Size,
		TotalItems: mapped.TotalItems,
		TotalPages: mapped.TotalPages(),
	}
}

func toOrderUpdate(req UpdateOrderRequest) (domain.OrderUpdate, error) {
	update := domain.OrderUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		ZipCode:   req.ZipCode,
		City:      req.City,
		Phone:     req.Phone,
	}

	if req.DeliveryMethod != nil {
		method, err := domain.ToDeliveryMethod(*req.DeliveryMethod)
		if err != nil {
			return domain.OrderUpdate{}, err
		}
		update.DeliveryMethod = lo.ToPtr(method)
	}

	return update, nil
}
