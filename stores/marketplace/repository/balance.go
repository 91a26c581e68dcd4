package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/marketplace"
	"github.com/mintmarket/goapi/service/query"
)

type balanceImpl struct {
	q query.Mongo
}

func NewBalance(q query.Mongo) marketplace.BalanceRepo {
	return &balanceImpl{q}
}

func (im *balanceImpl) FindOne(c ctx.Ctx, address domain.Address) (*marketplace.Balance, error) {
	res := &marketplace.Balance{}

	if err := im.q.FindOne(c, domain.TableBalances, bson.M{"address": address.ToLower()}, res); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("address", address).Error("q.FindOne failed")
		return nil, err
	}

	return res, nil
}

// Add credits amount on top of the current balance. Callers serialize
// through the operation lock, so read-modify-write is race free here.
func (im *balanceImpl) Add(c ctx.Ctx, address domain.Address, amount domain.Amount) (*marketplace.Balance, error) {
	address = address.ToLower()

	current := domain.ZeroAmount

	prev, err := im.FindOne(c, address)
	if err == nil {
		current = prev.Balance
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	cur, err := current.Decimal()
	if err != nil {
		c.WithField("err", err).WithField("address", address).Error("stored balance is not a valid amount")
		return nil, err
	}

	add, err := amount.Decimal()
	if err != nil {
		c.WithField("err", err).WithField("address", address).Error("credit is not a valid amount")
		return nil, err
	}

	res := &marketplace.Balance{
		Address: address,
		Balance: domain.AmountFromDecimal(cur.Add(add)),
	}

	if err := im.q.Upsert(c, domain.TableBalances, bson.M{"address": address}, res); err != nil {
		c.WithField("err", err).WithField("address", address).Error("q.Upsert failed")
		return nil, err
	}

	return res, nil
}

func (im *balanceImpl) Reset(c ctx.Ctx, address domain.Address) (domain.Amount, error) {
	address = address.ToLower()

	prev, err := im.FindOne(c, address)
	if err == domain.ErrNotFound {
		return domain.ZeroAmount, nil
	} else if err != nil {
		return domain.ZeroAmount, err
	}

	zeroed := &marketplace.Balance{
		Address: address,
		Balance: domain.ZeroAmount,
	}

	if err := im.q.Upsert(c, domain.TableBalances, bson.M{"address": address}, zeroed); err != nil {
		c.WithField("err", err).WithField("address", address).Error("q.Upsert failed")
		return domain.ZeroAmount, err
	}

	return prev.Balance, nil
}
