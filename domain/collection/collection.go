package collection

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

// MaxNameLength is the upper bound on collection names
const MaxNameLength = 100

// Collection is a named grouping of minted items. Immutable once created,
// never deleted.
type Collection struct {
	CollectionId   domain.CollectionId `json:"collectionId" bson:"collectionId"`
	CollectionName string              `json:"collectionName" bson:"collectionName"`
	Creator        domain.Address      `json:"creator" bson:"creator"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
}

type CreatePayload struct {
	CollectionName string         `json:"collectionName" validate:"required"`
	Creator        domain.Address `json:"-"`
}

type findAllOptions struct {
	SortBy  *string
	SortDir *domain.SortDir
	Offset  *int32
	Limit   *int32
	Creator *domain.Address
	Name    *string
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

func WithSort(sortby string, sortdir domain.SortDir) FindAllOptions {
	return func(options *findAllOptions) error {
		options.SortBy = &sortby
		options.SortDir = &sortdir
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithCreator(creator domain.Address) FindAllOptions {
	return func(options *findAllOptions) error {
		lower := creator.ToLower()
		options.Creator = &lower
		return nil
	}
}

// WithName matches the exact, case-sensitive collection name
func WithName(name string) FindAllOptions {
	return func(options *findAllOptions) error {
		options.Name = &name
		return nil
	}
}

type Repo interface {
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Collection, error)
	Count(c ctx.Ctx, opts ...FindAllOptions) (int, error)
	FindOne(c ctx.Ctx, id domain.CollectionId) (*Collection, error)
	Create(c ctx.Ctx, value *Collection) error
	NextId(c ctx.Ctx) (domain.CollectionId, error)
}

type Usecase interface {
	Create(c ctx.Ctx, value CreatePayload) (*Collection, error)
	FindAll(c ctx.Ctx, opts ...FindAllOptions) ([]*Collection, error)
	FindOne(c ctx.Ctx, id domain.CollectionId) (*Collection, error)
	GetCreatorCollections(c ctx.Ctx, creator domain.Address) ([]*Collection, error)
}
