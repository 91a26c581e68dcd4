package event

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

type Type string

const (
	TypeCollectionCreated Type = "collection_created"
	TypeNFTMinted         Type = "nft_minted"
	TypeNFTTransferred    Type = "nft_transferred"
	TypeNFTListed         Type = "nft_listed"
	TypeNFTListingDeleted Type = "nft_listing_deleted"
	TypeNFTSold           Type = "nft_sold"
	TypeAuctionCreated    Type = "auction_created"
	TypeAuctionCancelled  Type = "auction_cancelled"
	TypeBidPlaced         Type = "bid_placed"
)

// Event is one committed ledger operation. Seq is strictly increasing
// across all events, the ledger is append-only.
type Event struct {
	Seq          int64               `json:"seq" bson:"seq"`
	Type         Type                `json:"type" bson:"type"`
	CollectionId domain.CollectionId `json:"collectionId,omitempty" bson:"collectionId,omitempty"`
	TokenId      domain.TokenId      `json:"tokenId,omitempty" bson:"tokenId,omitempty"`
	Price        domain.Amount       `json:"price,omitempty" bson:"price,omitempty"`
	Address      domain.Address      `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
}

type findAllOptions struct {
	Offset  *int32
	Limit   *int32
	TokenId *domain.TokenId
	Type    *Type
}

type FindAllOptions func(*findAllOptions) error

func GetFindAllOptions(opts ...FindAllOptions) (findAllOptions, error) {
	res := findAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithPagination(offset int32, limit int32) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithTokenId(tokenId domain.TokenId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func WithType(t Type) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Type = &t
		return nil
	}
}

type Repo interface {
	Insert(c ctx.Ctx, value *Event) error
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Event, error)
	NextSeq(c ctx.Ctx) (int64, error)
}

// Usecase records committed operations and serves the ordered ledger
type Usecase interface {
	Record(c ctx.Ctx, value *Event) error
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Event, error)
}
