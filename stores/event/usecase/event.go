package usecase

import (
	"encoding/json"
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain/event"
	"github.com/mintmarket/goapi/service/redis"
)

// ChannelEvents is the pub/sub channel committed events are published to
const ChannelEvents = "ledger:events"

var timeNow = time.Now

type EventUseCaseCfg struct {
	EventRepo event.Repo
	Redis     redis.Service
}

type impl struct {
	event event.Repo
	redis redis.Service
}

func NewEvent(cfg *EventUseCaseCfg) event.Usecase {
	return &impl{
		event: cfg.EventRepo,
		redis: cfg.Redis,
	}
}

// Record assigns the next ledger sequence, persists the event, and
// publishes it for live subscribers. Persistence failure fails the
// recording operation; publish failure is logged only, the mongo ledger
// stays the source of truth.
func (im *impl) Record(c ctx.Ctx, value *event.Event) error {
	seq, err := im.event.NextSeq(c)
	if err != nil {
		c.WithField("err", err).Error("event.NextSeq failed")
		return err
	}

	value.Seq = seq
	if value.CreatedAt.IsZero() {
		value.CreatedAt = timeNow().UTC()
	}

	if err := im.event.Insert(c, value); err != nil {
		c.WithField("err", err).WithField("seq", seq).Error("event.Insert failed")
		return err
	}

	if im.redis == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.WithField("err", err).WithField("seq", seq).Error("json.Marshal failed")
		return nil
	}

	if err := im.redis.Publish(c, ChannelEvents, payload); err != nil {
		c.WithField("err", err).WithField("seq", seq).Warn("redis.Publish failed")
	}

	return nil
}

func (im *impl) FindAll(c ctx.Ctx, opts ...event.FindAllOptions) ([]*event.Event, error) {
	res, err := im.event.FindAll(c, opts...)
	if err != nil {
		c.WithField("err", err).Error("event.FindAll failed")
		return nil, err
	}
	return res, nil
}
