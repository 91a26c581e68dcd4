package marketplace

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

type ListPayload struct {
	Price domain.Amount `json:"price" validate:"required"`
}

type BuyPayload struct {
	Payment domain.Amount `json:"payment" validate:"required"`
}

type CreateAuctionPayload struct {
	StartingBid     domain.Amount `json:"startingBid" validate:"required"`
	DurationSeconds int64         `json:"durationSeconds" validate:"required"`
}

type BidPayload struct {
	Payment domain.Amount `json:"payment" validate:"required"`
}

// Sale is the outcome of a completed purchase or finalized auction
type Sale struct {
	TokenId domain.TokenId `json:"tokenId"`
	Price   domain.Amount  `json:"price"`
	Buyer   domain.Address `json:"buyer"`
	Seller  domain.Address `json:"seller"`
	// Refund is overpayment credited back to the buyer, zero when exact
	Refund domain.Amount `json:"refund"`
}

// Usecase is the marketplace state machine. Each token is in exactly one
// of {none, listed, auctioned}; every operation validates all
// preconditions before mutating anything and commits as a whole unit.
type Usecase interface {
	ListNFT(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, price domain.Amount) (*Listing, error)
	CancelListing(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId) error
	BuyNFT(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, payment domain.Amount) (*Sale, error)

	CreateAuction(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, startingBid domain.Amount, duration time.Duration) (*Auction, error)
	PlaceBid(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, payment domain.Amount) (*Auction, error)
	FinalizeAuction(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId) (*Sale, error)

	CheckAuctionStatus(c ctx.Ctx, tokenId domain.TokenId) (*AuctionStatus, error)
	VerifyNFTOwnership(c ctx.Ctx, tokenId domain.TokenId, address domain.Address) (bool, error)
	GetListing(c ctx.Ctx, tokenId domain.TokenId) (*Listing, error)
	GetAuction(c ctx.Ctx, tokenId domain.TokenId) (*Auction, error)

	GetBalance(c ctx.Ctx, address domain.Address) (domain.Amount, error)
	Withdraw(c ctx.Ctx, caller domain.Address) (domain.Amount, error)
}
