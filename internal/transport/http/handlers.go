package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/nikolayk812/orderflow/internal/domain"
	"github.com/nikolayk812/orderflow/internal/requestctx"
	"github.com/nikolayk812/orderflow/internal/service"
)

const maxBodySize = 16 * 1024

type orderService interface {
	ListOrders(ctx context.Context, req service.ListOrdersRequest) (service.PageResponse[service.OrderSummaryResponse], error)
	ListMyOrders(ctx context.Context, requester domain.Requester, req service.ListOrdersRequest) (service.PageResponse[service.OrderSummaryResponse], error)
	GetOrderByID(ctx context.Context, orderID string) (service.OrderResponse, error)
	GetMyOrderByID(ctx context.Context, requester domain.Requester, orderID string) (service.OrderResponse, error)
	GetOrderStatus(ctx context.Context, orderID string) (service.MessageResponse, error)
	GetMyOrderStatus(ctx context.Context, requester domain.Requester, orderID string) (service.MessageResponse, error)
	CreateOrder(ctx context.Context, requester domain.Requester, req service.CreateOrderRequest) (service.OrderResponse, error)
	UpdateOrder(ctx context.Context, requester domain.Requester, orderID string, req service.UpdateOrderRequest) (service.OrderResponse, error)
	CancelOrder(ctx context.Context, requester domain.Requester, orderID string) (service.MessageResponse, error)
	ToggleOrderStatus(ctx context.Context, orderID string) (service.MessageResponse, error)
}

type orderHandlers struct {
	orders   orderService
	validate *validator.Validate
}

func newOrderHandlers(orders orderService) *orderHandlers {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// report json field names in validation messages
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &orderHandlers{orders: orders, validate: validate}
}

func (h *orderHandlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := parseListRequest(w, r)
	if !ok {
		return
	}
	req.UserID = strings.TrimSpace(r.URL.Query().Get("userId"))

	page, err := h.orders.ListOrders(ctx, req)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, page)
}

func (h *orderHandlers) listMyOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := parseListRequest(w, r)
	if !ok {
		return
	}

	page, err := h.orders.ListMyOrders(ctx, requester(ctx), req)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, page)
}

func (h *orderHandlers) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := h.orders.GetOrderByID(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, order)
}

func (h *orderHandlers) getMyOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	order, err := h.orders.GetMyOrderByID(ctx, requester(ctx), chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, order)
}

func (h *orderHandlers) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msg, err := h.orders.GetOrderStatus(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, msg)
}

func (h *orderHandlers) getMyOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msg, err := h.orders.GetMyOrderStatus(ctx, requester(ctx), chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, msg)
}

func (h *orderHandlers) toggleOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msg, err := h.orders.ToggleOrderStatus(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, msg)
}

func (h *orderHandlers) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.CreateOrder(ctx, requester(ctx), req)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/me/orders/"+order.OrderID)
	writeJSON(ctx, w, http.StatusCreated, order)
}

func (h *orderHandlers) updateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.UpdateOrderRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.orders.UpdateOrder(ctx, requester(ctx), chi.URLParam(r, "orderID"), req)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, order)
}

func (h *orderHandlers) cancelOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	msg, err := h.orders.CancelOrder(ctx, requester(ctx), chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, msg)
}

// decode reads a JSON body into dst and validates it. It writes the 400 response itself.
func (h *orderHandlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	ctx := r.Context()

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst); err != nil {
		writeError(ctx, w, codeInvalidRequest, "Malformed JSON body.", http.StatusBadRequest)
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		writeError(ctx, w, codeInvalidRequest, validationMessage(err), http.StatusBadRequest)
		return false
	}

	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Param() != "" {
			return fmt.Sprintf("Field %s failed on '%s=%s' rule.", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("Field %s failed on '%s' rule.", fe.Field(), fe.Tag())
	}
	return "Invalid request body."
}

func parseListRequest(w http.ResponseWriter, r *http.Request) (service.ListOrdersRequest, bool) {
	ctx := r.Context()
	query := r.URL.Query()

	page, err := intParam(query.Get("page"))
	if err != nil {
		writeError(ctx, w, codeInvalidRequest, "Query parameter page must be an integer.", http.StatusBadRequest)
		return service.ListOrdersRequest{}, false
	}

	size, err := intParam(query.Get("size"))
	if err != nil {
		writeError(ctx, w, codeInvalidRequest, "Query parameter size must be an integer.", http.StatusBadRequest)
		return service.ListOrdersRequest{}, false
	}

	return service.ListOrdersRequest{
		Page:      page,
		Size:      size,
		Direction: strings.TrimSpace(query.Get("direction")),
		SortField: strings.TrimSpace(query.Get("sortField")),
	}, true
}

func intParam(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// requester is set by the identity middleware on every route that reaches a handler.
func requester(ctx context.Context) domain.Requester {
	r, _ := requestctx.Requester(ctx)
	return r
}
