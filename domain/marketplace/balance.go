package marketplace

import (
	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

// Balance holds marketplace-credited funds for one address: seller
// proceeds, outbid refunds, and overpayment change. Credits are withdrawn
// by the owner (pull payments), so one recipient's failure to receive a
// push payment can never block another operation.
type Balance struct {
	Address domain.Address `json:"address" bson:"address"`
	Balance domain.Amount  `json:"balance" bson:"balance"`
}

type BalanceRepo interface {
	FindOne(c ctx.Ctx, address domain.Address) (*Balance, error)
	// Add credits amount to the address balance, creating the record if needed
	Add(c ctx.Ctx, address domain.Address, amount domain.Amount) (*Balance, error)
	// Reset zeroes the balance and returns the amount that was withdrawable
	Reset(c ctx.Ctx, address domain.Address) (domain.Amount, error)
}
