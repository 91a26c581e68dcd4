package marketplace

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/domain"
)

// Auction is the timed ascending-bid sale record for one token. HighestBid
// starts at the starting bid with no bidder and only ever increases. The
// highest bid is escrowed by the marketplace until outbid or finalized.
type Auction struct {
	TokenId       domain.TokenId `json:"tokenId" bson:"tokenId"`
	Creator       domain.Address `json:"creator" bson:"creator"`
	StartingBid   domain.Amount  `json:"startingBid" bson:"startingBid"`
	HighestBid    domain.Amount  `json:"highestBid" bson:"highestBid"`
	HighestBidder domain.Address `json:"highestBidder" bson:"highestBidder"`
	EndTime       time.Time      `json:"endTime" bson:"endTime"`
	Active        bool           `json:"active" bson:"active"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
}

// HasBids reports whether at least one bid has been escrowed
func (a *Auction) HasBids() bool {
	return !a.HighestBidder.IsEmpty()
}

// AuctionStatus is the read model for checkAuctionStatus
type AuctionStatus struct {
	Active        bool           `json:"active"`
	HighestBid    domain.Amount  `json:"highestBid"`
	HighestBidder domain.Address `json:"highestBidder"`
	EndTime       *time.Time     `json:"endTime,omitempty"`
}

// BidUpdate moves the escrowed high bid to a new bidder
type BidUpdate struct {
	HighestBid    domain.Amount  `bson:"highestBid"`
	HighestBidder domain.Address `bson:"highestBidder"`
}

type AuctionRepo interface {
	FindOne(c ctx.Ctx, tokenId domain.TokenId) (*Auction, error)
	Upsert(c ctx.Ctx, value *Auction) error
	UpdateBid(c ctx.Ctx, tokenId domain.TokenId, value BidUpdate) error
	// Deactivate ends the auction record, preserving its final state
	Deactivate(c ctx.Ctx, tokenId domain.TokenId) error
}
