package domain

import "time"

// OrderUpdate is a partial edit of an order. Nil fields keep their current value.
type OrderUpdate struct {
	FirstName      *string
	LastName       *string
	Address        *string
	ZipCode        *string
	City           *string
	Phone          *string
	DeliveryMethod *DeliveryMethod
}

// Advance moves the order one step along the forward status chain.
func (o *Order) Advance(now time.Time) (from, to OrderStatus, err error) {
	next, ok := o.Status.Next()
	if !ok {
		return "", "", InvalidArgumentf("Order with id: %s is in final status %s and the status can not be changed.", o.ID, o.Status)
	}

	from = o.Status
	o.Status = next
	o.touch(now)

	return from, next, nil
}

func (o *Order) Cancel(now time.Time) error {
	if !o.Status.CanCancel() {
		return InvalidArgumentf("Order already in status '%s' and cannot be canceled.", o.Status)
	}

	o.Status = OrderStatusCanceled
	o.touch(now)

	return nil
}

func (o *Order) ApplyUpdate(u OrderUpdate, now time.Time) error {
	if !o.Status.CanUpdate() {
		return InvalidArgumentf("Order already in status '%s' and cannot be updated.", o.Status)
	}

	assign(&o.FirstName, u.FirstName)
	assign(&o.LastName, u.LastName)
	assign(&o.Address, u.Address)
	assign(&o.ZipCode, u.ZipCode)
	assign(&o.City, u.City)
	assign(&o.Phone, u.Phone)
	assign(&o.DeliveryMethod, u.DeliveryMethod)

	o.touch(now)

	return nil
}

// touch sets UpdatedAt to now, or one microsecond past the previous value
// when the clock has not moved forward. Postgres keeps microseconds.
func (o *Order) touch(now time.Time) {
	now = now.UTC().Truncate(time.Microsecond)
	if !now.After(o.UpdatedAt) {
		now = o.UpdatedAt.Add(time.Microsecond)
	}
	o.UpdatedAt = now
}

func assign[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
