package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/marketplace"
	"github.com/mintmarket/goapi/service/query"
)

type listingImpl struct {
	q query.Mongo
}

func NewListing(q query.Mongo) marketplace.ListingRepo {
	return &listingImpl{q}
}

func (im *listingImpl) FindOne(c ctx.Ctx, tokenId domain.TokenId) (*marketplace.Listing, error) {
	res := &marketplace.Listing{}

	if err := im.q.FindOne(c, domain.TableListings, bson.M{"tokenId": tokenId}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("tokenId", tokenId).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

func (im *listingImpl) Upsert(c ctx.Ctx, value *marketplace.Listing) error {
	if err := im.q.Upsert(c, domain.TableListings, bson.M{"tokenId": value.TokenId}, value); err != nil {
		c.WithField("err", err).WithField("tokenId", value.TokenId).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *listingImpl) Clear(c ctx.Ctx, tokenId domain.TokenId) error {
	// keep the document, zero everything but the id
	cleared := &marketplace.Listing{TokenId: tokenId}

	if err := im.q.Upsert(c, domain.TableListings, bson.M{"tokenId": tokenId}, cleared); err != nil {
		c.WithField("err", err).WithField("tokenId", tokenId).Error("q.Upsert failed")
		return err
	}
	return nil
}
