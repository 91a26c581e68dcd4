package nftitem

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

// NftItem is a uniquely numbered asset. MintPrice is immutable and acts as
// the floor for all future sale prices; Owner is mutated only through the
// registry transfer primitive.
type NftItem struct {
	TokenId      domain.TokenId      `json:"tokenId" bson:"tokenId"`
	CollectionId domain.CollectionId `json:"collectionId" bson:"collectionId"`
	Name         string              `json:"name" bson:"name"`
	MintPrice    domain.Amount       `json:"mintPrice" bson:"mintPrice"`
	Owner        domain.Address      `json:"owner" bson:"owner"`
	Minter       domain.Address      `json:"minter" bson:"minter"`
	CreatedAt    time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type MintPayload struct {
	CollectionId domain.CollectionId `json:"collectionId" validate:"required"`
	Name         string              `json:"name" validate:"required"`
	MintPrice    domain.Amount       `json:"mintPrice" validate:"required"`
	Minter       domain.Address      `json:"-"`
}

type findAllOptions struct {
	Offset       *int32
	Limit        *int32
	Owner        *domain.Address
	CollectionId *domain.CollectionId
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

func WithOwner(owner domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := owner.ToLower()
		options.Owner = &lower
		return nil
	}
}

func WithCollectionId(id domain.CollectionId) FindAllOptions {
	return func(options *findAllOptions) error {
		options.CollectionId = &id
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*NftItem, error)
	FindOne(c ctx.Ctx, tokenId domain.TokenId) (*NftItem, error)
	Create(c ctx.Ctx, value *NftItem) error
	SetOwner(c ctx.Ctx, tokenId domain.TokenId, owner domain.Address) error
	NextId(c ctx.Ctx) (domain.TokenId, error)
}

// Usecase is the registry's item surface: minting, the transfer primitive,
// and ownership queries. The marketplace never mutates ownership directly,
// it always goes through Transfer.
type Usecase interface {
	Mint(c ctx.Ctx, value MintPayload) (*NftItem, error)
	Transfer(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, to domain.Address) (*NftItem, error)
	FindOne(c ctx.Ctx, tokenId domain.TokenId) (*NftItem, error)
	GetNFTsByOwner(c ctx.Ctx, owner domain.Address) ([]*NftItem, error)
	GetNFTsByCollection(c ctx.Ctx, id domain.CollectionId) ([]*NftItem, error)
	TokenExists(c ctx.Ctx, tokenId domain.TokenId) (bool, error)
}
