package usecase

import (
	"time"

	"github.com/mintmarket/goapi/base/ctx"
	"github.com/mintmarket/goapi/base/oplock"
	"github.com/mintmarket/goapi/base/ptr"
	"github.com/mintmarket/goapi/domain"
	"github.com/mintmarket/goapi/domain/event"
	"github.com/mintmarket/goapi/domain/marketplace"
	"github.com/mintmarket/goapi/domain/nftitem"
)

var timeNow = time.Now

type MarketplaceUseCaseCfg struct {
	ListingRepo marketplace.ListingRepo
	AuctionRepo marketplace.AuctionRepo
	BalanceRepo marketplace.BalanceRepo
	NftitemRepo nftitem.Repo
	EventUC     event.Usecase
	OpLock      *oplock.Lock
}

type impl struct {
	listing marketplace.ListingRepo
	auction marketplace.AuctionRepo
	balance marketplace.BalanceRepo
	nftitem nftitem.Repo
	eventUC event.Usecase
	oplock  *oplock.Lock
}

func NewMarketplace(cfg *MarketplaceUseCaseCfg) marketplace.Usecase {
	return &impl{
		listing: cfg.ListingRepo,
		auction: cfg.AuctionRepo,
		balance: cfg.BalanceRepo,
		nftitem: cfg.NftitemRepo,
		eventUC: cfg.EventUC,
		oplock:  cfg.OpLock,
	}
}

// activeListing returns the live listing for tokenId, nil when none
func (im *impl) activeListing(c ctx.Ctx, tokenId domain.TokenId) (*marketplace.Listing, error) {
	listing, err := im.listing.FindOne(c, tokenId)
	if err == domain.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if !listing.IsActive {
		return nil, nil
	}
	return listing, nil
}

// activeAuction returns the live auction for tokenId, nil when none
func (im *impl) activeAuction(c ctx.Ctx, tokenId domain.TokenId) (*marketplace.Auction, error) {
	auction, err := im.auction.FindOne(c, tokenId)
	if err == domain.ErrNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	if !auction.Active {
		return nil, nil
	}
	return auction, nil
}

// requireStateNone fails with Conflict when the token is already listed or
// under auction
func (im *impl) requireStateNone(c ctx.Ctx, tokenId domain.TokenId) error {
	listing, err := im.activeListing(c, tokenId)
	if err != nil {
		return err
	}
	if listing != nil {
		return domain.ErrAlreadyListed
	}

	auction, err := im.activeAuction(c, tokenId)
	if err != nil {
		return err
	}
	if auction != nil {
		return domain.ErrAuctionAlreadyActive
	}

	return nil
}

func (im *impl) ListNFT(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, price domain.Amount) (*marketplace.Listing, error) {
	if !price.IsPositive() {
		return nil, domain.ErrZeroPrice
	}

	var res *marketplace.Listing

	err := im.oplock.Do(func() error {
		item, err := im.nftitem.FindOne(c, tokenId)
		if err != nil {
			return err
		}

		if !item.Owner.Equals(caller) {
			return domain.ErrNotOwner
		}

		priceDec, err := price.Decimal()
		if err != nil {
			return domain.ErrBadParamInput
		}
		floorDec, err := item.MintPrice.Decimal()
		if err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("stored mint price is not a valid amount")
			return err
		}
		if priceDec.LessThan(floorDec) {
			return domain.ErrPriceBelowMintPrice
		}

		if err := im.requireStateNone(c, tokenId); err != nil {
			return err
		}

		res = &marketplace.Listing{
			TokenId:  tokenId,
			Price:    price,
			Seller:   caller.ToLower(),
			IsActive: true,
			ListedAt: ptr.Time(timeNow().UTC()),
		}

		if err := im.listing.Upsert(c, res); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("listing.Upsert failed")
			return err
		}

		return im.eventUC.Record(c, &event.Event{
			Type:    event.TypeNFTListed,
			TokenId: tokenId,
			Price:   price,
			Address: res.Seller,
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (im *impl) CancelListing(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId) error {
	return im.oplock.Do(func() error {
		listing, err := im.activeListing(c, tokenId)
		if err != nil {
			return err
		}
		if listing == nil {
			return domain.ErrNotListed
		}

		if !listing.Seller.Equals(caller) {
			return domain.ErrNotSeller
		}

		if err := im.listing.Clear(c, tokenId); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("listing.Clear failed")
			return err
		}

		return im.eventUC.Record(c, &event.Event{
			Type:    event.TypeNFTListingDeleted,
			TokenId: tokenId,
			Address: listing.Seller,
		})
	})
}

func (im *impl) BuyNFT(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, payment domain.Amount) (*marketplace.Sale, error) {
	paymentDec, err := payment.Decimal()
	if err != nil {
		return nil, domain.ErrBadParamInput
	}

	var res *marketplace.Sale

	err = im.oplock.Do(func() error {
		listing, err := im.activeListing(c, tokenId)
		if err != nil {
			return err
		}
		if listing == nil {
			return domain.ErrNotListed
		}

		priceDec, err := listing.Price.Decimal()
		if err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("stored price is not a valid amount")
			return err
		}

		if paymentDec.LessThan(priceDec) {
			return domain.ErrInsufficientPayment
		}

		item, err := im.nftitem.FindOne(c, tokenId)
		if err != nil {
			return err
		}
		if !item.Owner.Equals(listing.Seller) {
			// seller moved the item out from under the listing
			return domain.ErrNotListed
		}

		buyer := caller.ToLower()
		excess := paymentDec.Sub(priceDec)

		// state first, funds after
		if err := im.listing.Clear(c, tokenId); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("listing.Clear failed")
			return err
		}

		if err := im.nftitem.SetOwner(c, tokenId, buyer); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("nftitem.SetOwner failed")
			return err
		}

		if _, err := im.balance.Add(c, listing.Seller, listing.Price); err != nil {
			c.WithField("err", err).WithField("address", listing.Seller).Error("balance.Add failed")
			return err
		}

		refund := domain.ZeroAmount
		if excess.IsPositive() {
			refund = domain.AmountFromDecimal(excess)
			if _, err := im.balance.Add(c, buyer, refund); err != nil {
				c.WithField("err", err).WithField("address", buyer).Error("balance.Add failed")
				return err
			}
		}

		res = &marketplace.Sale{
			TokenId: tokenId,
			Price:   listing.Price,
			Buyer:   buyer,
			Seller:  listing.Seller,
			Refund:  refund,
		}

		return im.eventUC.Record(c, &event.Event{
			Type:    event.TypeNFTSold,
			TokenId: tokenId,
			Price:   listing.Price,
			Address: buyer,
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (im *impl) CreateAuction(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, startingBid domain.Amount, duration time.Duration) (*marketplace.Auction, error) {
	if !startingBid.IsPositive() {
		return nil, domain.ErrZeroPrice
	}

	if duration <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	var res *marketplace.Auction

	err := im.oplock.Do(func() error {
		item, err := im.nftitem.FindOne(c, tokenId)
		if err != nil {
			return err
		}

		if !item.Owner.Equals(caller) {
			return domain.ErrNotOwner
		}

		if err := im.requireStateNone(c, tokenId); err != nil {
			return err
		}

		now := timeNow().UTC()
		res = &marketplace.Auction{
			TokenId:       tokenId,
			Creator:       caller.ToLower(),
			StartingBid:   startingBid,
			HighestBid:    startingBid,
			HighestBidder: "",
			EndTime:       now.Add(duration),
			Active:        true,
			CreatedAt:     now,
		}

		if err := im.auction.Upsert(c, res); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("auction.Upsert failed")
			return err
		}

		return im.eventUC.Record(c, &event.Event{
			Type:    event.TypeAuctionCreated,
			TokenId: tokenId,
			Price:   startingBid,
			Address: res.Creator,
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (im *impl) PlaceBid(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId, payment domain.Amount) (*marketplace.Auction, error) {
	paymentDec, err := payment.Decimal()
	if err != nil {
		return nil, domain.ErrBadParamInput
	}

	var res *marketplace.Auction

	err = im.oplock.Do(func() error {
		auction, err := im.activeAuction(c, tokenId)
		if err != nil {
			return err
		}
		if auction == nil {
			return domain.ErrNoActiveAuction
		}

		if !timeNow().Before(auction.EndTime) {
			return domain.ErrAuctionEnded
		}

		highestDec, err := auction.HighestBid.Decimal()
		if err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("stored highest bid is not a valid amount")
			return err
		}

		if !paymentDec.GreaterThan(highestDec) {
			return domain.ErrBidTooLow
		}

		prevBidder := auction.HighestBidder
		prevBid := auction.HighestBid
		hadBids := auction.HasBids()

		update := marketplace.BidUpdate{
			HighestBid:    payment,
			HighestBidder: caller.ToLower(),
		}

		// state first, funds after: the outbid escrow becomes a
		// withdrawable credit instead of a push payment, so one
		// bidder's refund can never block the next bid
		if err := im.auction.UpdateBid(c, tokenId, update); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("auction.UpdateBid failed")
			return err
		}

		if hadBids {
			if _, err := im.balance.Add(c, prevBidder, prevBid); err != nil {
				c.WithField("err", err).WithField("address", prevBidder).Error("balance.Add failed")
				return err
			}
		}

		auction.HighestBid = update.HighestBid
		auction.HighestBidder = update.HighestBidder
		res = auction

		return im.eventUC.Record(c, &event.Event{
			Type:    event.TypeBidPlaced,
			TokenId: tokenId,
			Price:   payment,
			Address: update.HighestBidder,
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (im *impl) FinalizeAuction(c ctx.Ctx, caller domain.Address, tokenId domain.TokenId) (*marketplace.Sale, error) {
	var res *marketplace.Sale

	// finalization is permissionless once the end time has passed, the
	// caller only triggers settlement
	err := im.oplock.Do(func() error {
		auction, err := im.activeAuction(c, tokenId)
		if err != nil {
			return err
		}
		if auction == nil {
			return domain.ErrNoActiveAuction
		}

		if timeNow().Before(auction.EndTime) {
			return domain.ErrAuctionNotEnded
		}

		item, err := im.nftitem.FindOne(c, tokenId)
		if err != nil {
			return err
		}

		if err := im.auction.Deactivate(c, tokenId); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("auction.Deactivate failed")
			return err
		}

		if !item.Owner.Equals(auction.Creator) {
			// creator moved the item out from under the auction, so the
			// escrowed bid goes back to the bidder instead of settling
			refund := domain.ZeroAmount
			if auction.HasBids() {
				refund = auction.HighestBid
				if _, err := im.balance.Add(c, auction.HighestBidder, refund); err != nil {
					c.WithField("err", err).WithField("address", auction.HighestBidder).Error("balance.Add failed")
					return err
				}
			}

			res = &marketplace.Sale{
				TokenId: tokenId,
				Price:   domain.ZeroAmount,
				Buyer:   auction.Creator,
				Seller:  auction.Creator,
				Refund:  refund,
			}

			return im.eventUC.Record(c, &event.Event{
				Type:    event.TypeAuctionCancelled,
				TokenId: tokenId,
				Address: auction.Creator,
			})
		}

		if !auction.HasBids() {
			// item stays with the creator, no funds move
			res = &marketplace.Sale{
				TokenId: tokenId,
				Price:   domain.ZeroAmount,
				Buyer:   auction.Creator,
				Seller:  auction.Creator,
				Refund:  domain.ZeroAmount,
			}

			return im.eventUC.Record(c, &event.Event{
				Type:    event.TypeAuctionCancelled,
				TokenId: tokenId,
				Address: auction.Creator,
			})
		}

		if err := im.nftitem.SetOwner(c, tokenId, auction.HighestBidder); err != nil {
			c.WithField("err", err).WithField("tokenId", tokenId).Error("nftitem.SetOwner failed")
			return err
		}

		if _, err := im.balance.Add(c, auction.Creator, auction.HighestBid); err != nil {
			c.WithField("err", err).WithField("address", auction.Creator).Error("balance.Add failed")
			return err
		}

		res = &marketplace.Sale{
			TokenId: tokenId,
			Price:   auction.HighestBid,
			Buyer:   auction.HighestBidder,
			Seller:  auction.Creator,
			Refund:  domain.ZeroAmount,
		}

		return im.eventUC.Record(c, &event.Event{
			Type:    event.TypeNFTSold,
			TokenId: tokenId,
			Price:   auction.HighestBid,
			Address: auction.HighestBidder,
		})
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (im *impl) CheckAuctionStatus(c ctx.Ctx, tokenId domain.TokenId) (*marketplace.AuctionStatus, error) {
	auction, err := im.activeAuction(c, tokenId)
	if err != nil {
		return nil, err
	}

	if auction == nil {
		return &marketplace.AuctionStatus{
			Active:     false,
			HighestBid: domain.ZeroAmount,
		}, nil
	}

	return &marketplace.AuctionStatus{
		Active:        true,
		HighestBid:    auction.HighestBid,
		HighestBidder: auction.HighestBidder,
		EndTime:       ptr.Time(auction.EndTime),
	}, nil
}

func (im *impl) VerifyNFTOwnership(c ctx.Ctx, tokenId domain.TokenId, address domain.Address) (bool, error) {
	item, err := im.nftitem.FindOne(c, tokenId)
	if err == domain.ErrNotFound {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return item.Owner.Equals(address), nil
}

func (im *impl) GetListing(c ctx.Ctx, tokenId domain.TokenId) (*marketplace.Listing, error) {
	listing, err := im.listing.FindOne(c, tokenId)
	if err == domain.ErrNotFound {
		return &marketplace.Listing{TokenId: tokenId}, nil
	} else if err != nil {
		return nil, err
	}
	return listing, nil
}

func (im *impl) GetAuction(c ctx.Ctx, tokenId domain.TokenId) (*marketplace.Auction, error) {
	auction, err := im.auction.FindOne(c, tokenId)
	if err == domain.ErrNotFound {
		return &marketplace.Auction{TokenId: tokenId}, nil
	} else if err != nil {
		return nil, err
	}
	return auction, nil
}

func (im *impl) GetBalance(c ctx.Ctx, address domain.Address) (domain.Amount, error) {
	balance, err := im.balance.FindOne(c, address)
	if err == domain.ErrNotFound {
		return domain.ZeroAmount, nil
	} else if err != nil {
		return domain.ZeroAmount, err
	}
	return balance.Balance, nil
}

func (im *impl) Withdraw(c ctx.Ctx, caller domain.Address) (domain.Amount, error) {
	res := domain.ZeroAmount

	err := im.oplock.Do(func() error {
		amount, err := im.balance.Reset(c, caller)
		if err != nil {
			c.WithField("err", err).WithField("address", caller).Error("balance.Reset failed")
			return err
		}

		if !amount.IsPositive() {
			return domain.ErrNothingToWithdraw
		}

		res = amount
		return nil
	})
	if err != nil {
		return domain.ZeroAmount, err
	}

	return res, nil
}
