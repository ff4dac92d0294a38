package domain

type DeliveryMethod string

const (
	DeliveryMethodCourier        DeliveryMethod = "COURIER_DELIVERY"
	DeliveryMethodCustomerPickup DeliveryMethod = "CUSTOMER_PICKUP"
)

var validDeliveryMethods = map[DeliveryMethod]struct{}{
	DeliveryMethodCourier:        {},
	DeliveryMethodCustomerPickup: {},
}

func ToDeliveryMethod(s string) (DeliveryMethod, error) {
	method := DeliveryMethod(s)
	if _, ok := validDeliveryMethods[method]; ok {
		return method, nil
	}

	return "", InvalidArgumentf("Unknown delivery method: %s.", s)
}
