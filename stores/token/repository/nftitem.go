package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/nftitem"
	"github.com/mintmarket/goapi/service/query"
)

const counterName = "nftitems"

var timeNow = time.Now

type counterDoc struct {
	Name string `bson:"name"`
	Seq  int64  `bson:"seq"`
}

func makeFindQuery(optFns ...nftitem.FindAllOptions) (bson.M, error) {
	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.Owner != nil {
		qry["owner"] = *opts.Owner
	}

	if opts.CollectionId != nil {
		qry["collectionId"] = *opts.CollectionId
	}

	return qry, nil
}

type nftitemImpl struct {
	q query.Mongo
}

func NewNftItem(q query.Mongo) nftitem.Repo {
	return &nftitemImpl{q}
}

func (im *nftitemImpl) FindAll(c ctx.Ctx, optFns ...nftitem.FindAllOptions) ([]*nftitem.NftItem, error) {
	res := []*nftitem.NftItem{}

	opts, err := nftitem.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("nftitem.GetFindAllOptions failed")
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

	if err := im.q.Search(c, domain.TableNftItems, offset, limit, "tokenId", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *nftitemImpl) FindOne(c ctx.Ctx, tokenId domain.TokenId) (*nftitem.NftItem, error) {
	res := &nftitem.NftItem{}

	if err := im.q.FindOne(c, domain.TableNftItems, bson.M{"tokenId": tokenId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("tokenId", tokenId).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

func (im *nftitemImpl) Create(c ctx.Ctx, value *nftitem.NftItem) error {
	if err := im.q.Insert(c, domain.TableNftItems, value); err == query.ErrDuplicateKey {
		return domain.ErrConflict
	} else if err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *nftitemImpl) SetOwner(c ctx.Ctx, tokenId domain.TokenId, owner domain.Address) error {
	update := bson.M{
		"owner":     owner.ToLower(),
		"updatedAt": timeNow().UTC(),
	}

	if err := im.q.Patch(c, domain.TableNftItems, bson.M{"tokenId": tokenId}, update); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("tokenId", tokenId).Error("q.Patch failed")
		return err
	}

	return nil
}

func (im *nftitemImpl) NextId(c ctx.Ctx) (domain.TokenId, error) {
	res := counterDoc{}
	if err := im.q.Increment(c, domain.TableCounters, bson.M{"name": counterName}, &res, "seq", int64(1)); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return domain.TokenId(res.Seq), nil
}
