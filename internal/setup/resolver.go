package setup

import (
	"context"
	"errors"
	"fmt"

	"ims-shopify/internal/ims"

	"github.com/rs/zerolog"
)

// ErrNotFound means no seller carries a setup for the requested shop domain.
var ErrNotFound = errors.New("no seller is set up for shop domain")

type SellerLister interface {
	ListSellers(ctx context.Context) ([]ims.Seller, error)
}

type SellerDocumentWriter interface {
	UpdateSellerDataDocument(ctx context.Context, id ims.ID, document string) error
}

// Resolution is a matched seller together with its parsed setup.
type Resolution struct {
	SellerID ims.ID
	Setup    IntegrationSetup
	Document string
}

// Resolver finds the seller a shop domain belongs to.
//
// The whole seller collection is fetched in one unpaginated call and scanned
// in response order, so it assumes a small number of sellers. The first seller
// whose setup has an exactly equal shopDomain wins.
type Resolver struct {
	sellers SellerLister
	log     zerolog.Logger
}

func NewResolver(sellers SellerLister, log zerolog.Logger) *Resolver {
	return &Resolver{sellers: sellers, log: log}
}

func (r *Resolver) Resolve(ctx context.Context, shopDomain string) (*Resolution, error) {
	sellers, err := r.sellers.ListSellers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sellers: %w", err)
	}

	for _, seller := range sellers {
		s, err := Parse(seller.DataDocument)
		if err != nil {
			// Sellers without a usable setup are skipped.
			if !errors.Is(err, ErrNoDocument) && !errors.Is(err, ErrNoSetup) {
				r.log.Warn().Err(err).Str("seller_id", seller.ID.String()).Msg("ignoring unparsable data document")
			}
			continue
		}
		if s.ShopDomain != shopDomain {
			continue
		}
		return &Resolution{SellerID: seller.ID, Setup: s, Document: *seller.DataDocument}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, shopDomain)
}

// Store persists setup changes back onto the seller record in IMS.
type Store struct {
	writer SellerDocumentWriter
}

func NewStore(writer SellerDocumentWriter) *Store {
	return &Store{writer: writer}
}

// SaveFulfillmentServiceID records id on res, both in memory and in IMS.
func (s *Store) SaveFulfillmentServiceID(ctx context.Context, res *Resolution, id string) error {
	doc, err := WithFulfillmentServiceID(res.Document, id)
	if err != nil {
		return err
	}
	if err := s.writer.UpdateSellerDataDocument(ctx, res.SellerID, doc); err != nil {
		return fmt.Errorf("update seller %s: %w", res.SellerID, err)
	}
	res.Document = doc
	res.Setup.FulfillmentServiceID = &id
	return nil
}
