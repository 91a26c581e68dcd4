package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/event"
	"github.com/mintmarket/goapi/service/query"
)

const counterName = "events"

type counterDoc struct {
	Name string `bson:"name"`
	Seq  int64  `bson:"seq"`
}

func makeFindQuery(optFns ...event.FindAllOptions) (bson.M, error) {
	opts, err := event.GetFindAllOptions(optFns...)
	if err != nil {
		return nil, err
	}

	qry := bson.M{}

	if opts.TokenId != nil {
		qry["tokenId"] = *opts.TokenId
	}

	if opts.Type != nil {
		qry["type"] = *opts.Type
	}

	return qry, nil
}

type eventImpl struct {
	q query.Mongo
}

func NewEvent(q query.Mongo) event.Repo {
	return &eventImpl{q}
}

func (im *eventImpl) Insert(c ctx.Ctx, value *event.Event) error {
	if err := im.q.Insert(c, domain.TableEvents, value); err != nil {
		c.WithField("err", err).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *eventImpl) FindAll(c ctx.Ctx, optFns ...event.FindAllOptions) ([]*event.Event, error) {
	res := []*event.Event{}

	opts, err := event.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("event.GetFindAllOptions failed")
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

	// the ledger is always served in commit order
	if err := im.q.Search(c, domain.TableEvents, offset, limit, "seq", qry, &res); err != nil {
		c.WithField("err", err).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *eventImpl) NextSeq(c ctx.Ctx) (int64, error) {
	res := counterDoc{}
	if err := im.q.Increment(c, domain.TableCounters, bson.M{"name": counterName}, &res, "seq", int64(1)); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return res.Seq, nil
}
