package marketplace

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

// Listing is the fixed-price sale record for one token. At most one exists
// per token; a cleared listing keeps its document with zero values and
// isActive false, ids are never physically deleted.
type Listing struct {
	TokenId  domain.TokenId `json:"tokenId" bson:"tokenId"`
	Price    domain.Amount  `json:"price" bson:"price"`
	Seller   domain.Address `json:"seller" bson:"seller"`
	IsActive bool           `json:"isActive" bson:"isActive"`
	ListedAt *time.Time     `json:"listedAt,omitempty" bson:"listedAt,omitempty"`
}

type ListingRepo interface {
	FindOne(c ctx.Ctx, tokenId domain.TokenId) (*Listing, error)
	Upsert(c ctx.Ctx, value *Listing) error
	// Clear resets the listing record to zero values, keeping the tokenId
	Clear(c ctx.Ctx, tokenId domain.TokenId) error
}
