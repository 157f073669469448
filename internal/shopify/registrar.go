package shopify

import (
	"context"
	"strconv"
	"strings"

	"ims-shopify/internal/setup"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

const (
	ServiceName   = "Thetis IMS"
	ServiceHandle = "thetis-ims"
	// ServiceID is the fixed id the upsert is addressed to
	// (PUT fulfillment_services/58566312143.json).
	ServiceID uint64 = 58566312143
)

type FulfillmentServices interface {
	Update(ctx context.Context, fulfillmentService goshopify.FulfillmentServiceData) (*goshopify.FulfillmentServiceData, error)
}

var _ FulfillmentServices = goshopify.FulfillmentServiceService(nil)

type SetupStore interface {
	SaveFulfillmentServiceID(ctx context.Context, res *setup.Resolution, id string) error
}

type Outcome int

const (
	OutcomeAlreadyRegistered Outcome = iota
	OutcomeRegistered
)

func (o Outcome) String() string {
	if o == OutcomeRegistered {
		return "registered"
	}
	return "already_registered"
}

// Descriptor is the fulfillment service registered for every store.
func Descriptor(callbackBase string) goshopify.FulfillmentServiceData {
	return goshopify.FulfillmentServiceData{
		Id:                     ServiceID,
		Name:                   ServiceName,
		Handle:                 ServiceHandle,
		CallbackURL:            strings.TrimRight(callbackBase, "/") + "/v1",
		InventoryManagement:    true,
		PermitsSkuSharing:      true,
		RequiresShippingMethod: true,
		TrackingSupport:        true,
		Format:                 "json",
		FulfillmentOrdersOptIn: true,
	}
}

// Registrar registers the fulfillment service once per store.
// There is no locking: two concurrent webhooks for an unregistered store may both upsert.
type Registrar struct {
	store SetupStore
	log   zerolog.Logger
}

func NewRegistrar(store SetupStore, log zerolog.Logger) *Registrar {
	return &Registrar{store: store, log: log}
}

// Ensure upserts the fulfillment service unless res already records one, then
// writes the returned id back to the seller.
func (r *Registrar) Ensure(ctx context.Context, services FulfillmentServices, res *setup.Resolution, callbackBase string) (Outcome, error) {
	log := r.log.With().Str("shop", res.Setup.ShopDomain).Str("seller_id", res.SellerID.String()).Logger()

	if res.Setup.Registered() {
		log.Info().Str("fulfillment_service_id", *res.Setup.FulfillmentServiceID).Msg("fulfillment service already registered")
		return OutcomeAlreadyRegistered, nil
	}

	desc := Descriptor(callbackBase)
	out, err := services.Update(ctx, desc)
	if err != nil {
		return OutcomeAlreadyRegistered, &RegistrationError{ShopDomain: res.Setup.ShopDomain, Err: err}
	}

	id := desc.Id
	if out != nil && out.Id != 0 {
		id = out.Id
	}
	idStr := strconv.FormatUint(id, 10)
	log.Info().Str("fulfillment_service_id", idStr).Str("callback_url", desc.CallbackURL).Msg("fulfillment service registered")

	if err := r.store.SaveFulfillmentServiceID(ctx, res, idStr); err != nil {
		return OutcomeRegistered, &PersistError{SellerID: res.SellerID.String(), FulfillmentServiceID: idStr, Err: err}
	}
	return OutcomeRegistered, nil
}
