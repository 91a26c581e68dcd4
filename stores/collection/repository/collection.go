package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/collection"
	"github.com/mintmarket/goapi/service/query"
)

const counterName = "collections"

type counterDoc struct {
	Name string `bson:"name"`
	Seq  int64  `bson:"seq"`
}

func makeFindQuery(optFns ...collection.FindAllOptions) (bson.M, error) {
	opts, err := collection.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.Creator != nil {
		qry["creator"] = *opts.Creator
	}

	if opts.Name != nil {
		qry["collectionName"] = *opts.Name
	}

	return qry, nil
}

type collectionImpl struct {
	q query.Mongo
}

func NewCollection(q query.Mongo) collection.Repo {
	return &collectionImpl{q}
}

func (im *collectionImpl) FindAll(c ctx.Ctx, optFns ...collection.FindAllOptions) ([]*collection.Collection, error) {
	res := []*collection.Collection{}

	opts, err := collection.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("collection.GetFindAllOptions failed")
		return res, err
	}

	qry, err := makeFindQuery(optFns...)
	if err != nil {
		return res, err
	}

	offset := 0
	limit := 0

	if opts.Offset != nil {
		offset = int(*opts.Offset)
	}

	if opts.Limit != nil {
		limit = int(*opts.Limit)
	}

	// insertion order equals ascending id order
	sort := "collectionId"
	if opts.SortBy != nil && opts.SortDir != nil && *opts.SortDir == domain.SortDirDesc {
		sort = "-" + *opts.SortBy
	} else if opts.SortBy != nil {
		sort = *opts.SortBy
	}

	if err := im.q.Search(c, domain.TableCollections, offset, limit, sort, qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *collectionImpl) Count(c ctx.Ctx, optFns ...collection.FindAllOptions) (int, error) {
	qry, err := makeFindQuery(optFns...)
	if err != nil {
		return 0, err
	}

	res, err := im.q.Count(c, domain.TableCollections, qry)
	if err != nil {
		c.WithField("err", err).Error("q.Count failed")
		return 0, err
	}

	return res, nil
}

func (im *collectionImpl) FindOne(c ctx.Ctx, id domain.CollectionId) (*collection.Collection, error) {
	res := &collection.Collection{}

	if err := im.q.FindOne(c, domain.TableCollections, bson.M{"collectionId": id}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("collectionId", id).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

func (im *collectionImpl) Create(c ctx.Ctx, value *collection.Collection) error {
	if err := im.q.Insert(c, domain.TableCollections, value); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *collectionImpl) NextId(c ctx.Ctx) (domain.CollectionId, error) {
	res := counterDoc{}
	if err := im.q.Increment(c, domain.TableCounters, bson.M{"name": counterName}, &res, "seq", int64(1)); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.CollectionId(res.Seq), nil
}
