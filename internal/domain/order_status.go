package domain

import (
	"errors"
	"slices"
)

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map and the transitions table
const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusOnTheWay  OrderStatus = "ON_THE_WAY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusReturned  OrderStatus = "RETURNED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusCreated:   {},
	OrderStatusPaid:      {},
	OrderStatusOnTheWay:  {},
	OrderStatusDelivered: {},
	OrderStatusReturned:  {},
	OrderStatusCanceled:  {},
}

// orderStatusTransitions lists the legal next states of every non-final status.
// The first entry is the forward step taken by Next.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusCreated:   {OrderStatusPaid, OrderStatusCanceled},
	OrderStatusPaid:      {OrderStatusOnTheWay, OrderStatusCanceled},
	OrderStatusOnTheWay:  {OrderStatusDelivered},
	OrderStatusDelivered: {OrderStatusReturned},
}

// editableOrderStatuses are the statuses in which shipping details may change.
var editableOrderStatuses = []OrderStatus{OrderStatusCreated}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", errors.New("invalid order status")
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}

func (s OrderStatus) String() string {
	return string(s)
}

// Next returns the forward successor of s. ok is false for final statuses.
func (s OrderStatus) Next() (next OrderStatus, ok bool) {
	targets := orderStatusTransitions[s]
	if len(targets) == 0 {
		return "", false
	}
	return targets[0], true
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return slices.Contains(orderStatusTransitions[s], target)
}

// IsFinal reports whether no transition leaves s.
func (s OrderStatus) IsFinal() bool {
	return len(orderStatusTransitions[s]) == 0
}

func (s OrderStatus) CanUpdate() bool {
	return slices.Contains(editableOrderStatuses, s)
}

func (s OrderStatus) CanCancel() bool {
	return s.CanTransitionTo(OrderStatusCanceled)
}
