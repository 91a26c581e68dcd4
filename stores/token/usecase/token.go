package usecase

import (
	"strings"
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/oplock"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/collection"
	"github.com/mintmarket/goapi/domain/event"
	"github.com/mintmarket/goapi/domain/nftitem"
)

var timeNow = time.Now

type TokenUseCaseCfg struct {
	NftitemRepo    nftitem.Repo
	CollectionRepo collection.Repo
	EventUC        event.Usecase
	OpLock         *oplock.Lock
}

type impl struct {
	nftitem    nftitem.Repo
	collection collection.Repo
	eventUC    event.Usecase
	oplock     *oplock.Lock
}

func NewToken(cfg *TokenUseCaseCfg) nftitem.Usecase {
	return &impl{
		nftitem:    cfg.NftitemRepo,
		collection: cfg.CollectionRepo,
		eventUC:    cfg.EventUC,
		oplock:     cfg.OpLock,
	}
}

func (im *impl) Mint(c ctx.Ctx, value nftitem.MintPayload) (*nftitem.NftItem, error) {
	if len(strings.TrimSpace(value.Name)) == 0 {
		return nil, domain.ErrEmptyName
	}

	if !value.MintPrice.IsPositive() {
		return nil, domain.ErrZeroPrice
	}

	var res *nftitem.NftItem

	err := im.oplock.Do(func() error {
		if _, err := im.collection.FindOne(c, value.CollectionId); err != nil {
			if err != domain.ErrNotFound {
				c.WithField("err", err).WithField("collectionId", value.CollectionId).Error("collection.FindOne failed")
			}
			return err
		}

		id, err := im.nftitem.NextId(c)
		if err != nil {
			c.WithField("err", err).Error("nftitem.NextId failed")
			return err
		}

		now := timeNow().UTC()
		minter := value.Minter.ToLower()

		res = &nftitem.NftItem{
			TokenId:      id,
			CollectionId: value.CollectionId,
			Name:         value.Name,
			MintPrice:    value.MintPrice,
			Owner:        minter,
			Minter:       minter,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := im.nftitem.Create(c, res); err != nil {
			c.WithField("err", err).WithField("tokenId", id).Error("nftitem.Create failed")
			return err
		}

		return im.eventUC.Record(c, &event.Event{
			Type:         event.TypeNFTMinted,
			CollectionId: value.CollectionId,
			TokenId:      id,
			Price:        value.MintPrice,
			Address:      minter,
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (im *impl) Transfer(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, to domain.Address) (*nftitem.NftItem, error) {
	if to.IsEmpty() {
		return nil, domain.ErrInvalidAddress
	}

	var res *nftitem.NftItem

	err := im.oplock.Do(func() error {
		item, err := im.nftitem.FindOne(c, tokenId)
		if err != nil {
			if err != domain.ErrNotFound {
				c.WithField("err", err).WithField("tokenId", tokenId).Error("nftitem.FindOne failed")
			}
			return err
		}

		if !item.Owner.Equals(caller) {
			return domain.ErrNotOwner
		}

		if err := im.nftitem.SetOwner(c, tokenId, to); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("nftitem.SetOwner failed")
			return err
		}

		item.Owner = to.ToLower()
		item.UpdatedAt = timeNow().UTC()
		res = item

		return im.eventUC.Record(c, &event.Event{
			Type:    event.TypeNFTTransferred,
			TokenId: tokenId,
			Address: item.Owner,
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, tokenId domain.TokenId) (*nftitem.NftItem, error) {
	res, err := im.nftitem.FindOne(c, tokenId)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("nftitem.FindOne failed")
		}
		return nil, err
	}
	return res, nil
}

func (im *impl) GetNFTsByOwner(c ctx.Ctx, owner domain.Address) ([]*nftitem.NftItem, error) {
	res, err := im.nftitem.FindAll(c, nftitem.WithOwner(owner))
	if err != nil {
		c.WithField("err", err).Error("nftitem.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) GetNFTsByCollection(c ctx.Ctx, id domain.CollectionId) ([]*nftitem.NftItem, error) {
	if _, err := im.collection.FindOne(c, id); err != nil {
		return nil, err
	}

	res, err := im.nftitem.FindAll(c, nftitem.WithCollectionId(id))
	if err != nil {
		c.WithField("err", err).Error("nftitem.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) TokenExists(c ctx.Ctx, tokenId domain.TokenId) (bool, error) {
	if _, err := im.nftitem.FindOne(c, tokenId); err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}
