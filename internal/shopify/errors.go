package shopify

import "fmt"

// RegistrationError wraps a failed fulfillment service upsert.
type RegistrationError struct {
	ShopDomain string
	Err        error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register fulfillment service for %s: %v", e.ShopDomain, e.Err)
}

func (e *RegistrationError) Unwrap() error { return e.Err }

// PersistError means Shopify accepted the registration but the id could not be
// written back to the seller. The Shopify side is left as is.
type PersistError struct {
	SellerID             string
	FulfillmentServiceID string
	Err                  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("save fulfillment service %s on seller %s: %v", e.FulfillmentServiceID, e.SellerID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
