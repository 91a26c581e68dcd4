package usecase

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/oplock"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/collection"
	"github.com/mintmarket/goapi/domain/event"
)

var timeNow = time.Now

type CollectionUseCaseCfg struct {
	CollectionRepo collection.Repo
	EventUC        event.Usecase
	OpLock         *oplock.Lock
}

type impl struct {
	collection collection.Repo
	eventUC    event.Usecase
	oplock     *oplock.Lock
}

func NewCollection(cfg *CollectionUseCaseCfg) collection.Usecase {
	return &impl{
		collection: cfg.CollectionRepo,
		eventUC:    cfg.EventUC,
		oplock:     cfg.OpLock,
	}
}

func (im *impl) Create(c ctx.Ctx, value collection.CreatePayload) (*collection.Collection, error) {
	if len(strings.TrimSpace(value.CollectionName)) == 0 {
		return nil, domain.ErrEmptyName
	}

	// the limit counts characters, not bytes
	if utf8.RuneCountInString(value.CollectionName) > collection.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}

	var res *collection.Collection

	err := im.oplock.Do(func() error {
		cnt, err := im.collection.Count(c, collection.WithName(value.CollectionName))
		if err != nil {
			c.WithField("err", err).Error("collection.Count failed")
			return err
		}

		if cnt > 0 {
			return domain.ErrDuplicateCollectionName
		}

		id, err := im.collection.NextId(c)
		if err != nil {
			c.WithField("err", err).Error("collection.NextId failed")
			return err
		}

		res = &collection.Collection{
			CollectionId:   id,
			CollectionName: value.CollectionName,
			Creator:        value.Creator.ToLower(),
			CreatedAt:      timeNow().UTC(),
		}

		if err := im.collection.Create(c, res); err != nil {
			c.WithField("err", err).WithField("collectionId", id).Error("collection.Create failed")
			return err
		}

		return im.eventUC.Record(c, &event.Event{
			Type:         event.TypeCollectionCreated,
			CollectionId: id,
			Address:      res.Creator,
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...collection.FindAllOptions) ([]*collection.Collection, error) {
	res, err := im.collection.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("collection.FindAll failed")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindOne(c ctx.Ctx, id domain.CollectionId) (*collection.Collection, error) {
	res, err := im.collection.FindOne(c, id)
	if err != nil {
		if err != domain.ErrNotFound {
			c.WithField("err", err).WithField("collectionId", id).Error("collection.FindOne failed")
		}
		return nil, err
	}
	return res, nil
}

func (im *impl) GetCreatorCollections(c ctx.Ctx, creator domain.Address) ([]*collection.Collection, error) {
	return im.FindAll(c, collection.WithCreator(creator))
}
