package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/marketplace"
	"github.com/mintmarket/goapi/service/query"
)

type auctionImpl struct {
	q query.Mongo
}

func NewAuction(q query.Mongo) marketplace.AuctionRepo {
	return &auctionImpl{q}
}

func (im *auctionImpl) FindOne(c ctx.Ctx, tokenId domain.TokenId) (*marketplace.Auction, error) {
	res := &marketplace.Auction{}

	if err := im.q.FindOne(c, domain.TableAuctions, bson.M{"tokenId": tokenId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("tokenId", tokenId).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

func (im *auctionImpl) Upsert(c ctx.Ctx, value *marketplace.Auction) error {
	if err := im.q.Upsert(c, domain.TableAuctions, bson.M{"tokenId": value.TokenId}, value); err != nil {
		c.WithField("err", err).WithField("tokenId", value.TokenId).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *auctionImpl) UpdateBid(c ctx.Ctx, tokenId domain.TokenId, value marketplace.BidUpdate) error {
	if err := im.q.Patch(c, domain.TableAuctions, bson.M{"tokenId": tokenId}, value); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("tokenId", tokenId).Error("q.Patch failed")
		return err
	}
	return nil
}

func (im *auctionImpl) Deactivate(c ctx.Ctx, tokenId domain.TokenId) error {
	if err := im.q.Patch(c, domain.TableAuctions, bson.M{"tokenId": tokenId}, bson.M{"active": false}); err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("tokenId", tokenId).Error("q.Patch failed")
		return err
	}
	return nil
}
