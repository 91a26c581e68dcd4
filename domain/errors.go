package domain

import (
	"errors"

	"golang.org/x/xerrors"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")
	// ErrUnauthorized will throw if the caller is not the required owner or seller
	ErrUnauthorized = errors.New("Caller is not authorized")
	// ErrInvalidState will throw if the operation is not valid in the item's current state
	ErrInvalidState = errors.New("Operation not valid in current state")

	ErrInvalidAddress = errors.New("Invalid address")
)

// Stable, descriptive violations suitable for programmatic matching.
// Each wraps one of the sentinel errors above so errors.Is keeps working.
var (
	ErrEmptyName           = xerrors.Errorf("Name cannot be empty: %w", ErrBadParamInput)
	ErrNameTooLong         = xerrors.Errorf("Name cannot exceed 100 characters: %w", ErrBadParamInput)
	ErrZeroPrice           = xerrors.Errorf("Price must be greater than zero: %w", ErrBadParamInput)
	ErrInvalidDuration     = xerrors.Errorf("Duration must be greater than zero: %w", ErrBadParamInput)
	ErrPriceBelowMintPrice = xerrors.Errorf("Price cannot be less than mint price: %w", ErrBadParamInput)
	ErrInsufficientPayment = xerrors.Errorf("Payment is less than the listed price: %w", ErrBadParamInput)
	ErrBidTooLow           = xerrors.Errorf("Bid must be higher than current highest bid: %w", ErrBadParamInput)

	ErrDuplicateCollectionName = xerrors.Errorf("Collection name already exists: %w", ErrConflict)
	ErrAlreadyListed           = xerrors.Errorf("NFT is already listed for sale: %w", ErrConflict)
	ErrAuctionAlreadyActive    = xerrors.Errorf("An auction is already active for this NFT: %w", ErrConflict)

	ErrNotListed         = xerrors.Errorf("NFT not listed for sale: %w", ErrInvalidState)
	ErrNoActiveAuction   = xerrors.Errorf("No active auction for this NFT: %w", ErrInvalidState)
	ErrAuctionEnded      = xerrors.Errorf("Auction has ended: %w", ErrInvalidState)
	ErrAuctionNotEnded   = xerrors.Errorf("Auction is still active: %w", ErrInvalidState)
	ErrNothingToWithdraw = xerrors.Errorf("No funds available to withdraw: %w", ErrInvalidState)

	ErrNotOwner  = xerrors.Errorf("Caller is not the owner: %w", ErrUnauthorized)
	ErrNotSeller = xerrors.Errorf("Caller is not the seller: %w", ErrUnauthorized)
)
