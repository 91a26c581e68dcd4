package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// Table is a mongo collection name
type Table string

const (
	TableCounters    Table = "counters"
	TableCollections Table = "collections"
	TableNftItems    Table = "nftitems"
	TableListings    Table = "listings"
	TableAuctions    Table = "auctions"
	TableBalances    Table = "balances"
	TableEvents      Table = "events"
)

// Address identifies a caller, owner, or fund recipient
type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a == EmptyAddress
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// CollectionId is a sequential collection identifier, starting from 1
type CollectionId int64

// TokenId is a sequential item identifier, starting from 1
type TokenId int64

// Amount is the canonical string form of a money amount.
// All arithmetic and comparison go through decimal.
type Amount string

const ZeroAmount = Amount("0")

func (a Amount) Decimal() (decimal.Decimal, error) {
	if len(a) == 0 {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(a))
	if err != nil {
		return decimal.Zero, xerrors.Errorf("invalid amount %q: %w", string(a), err)
	}
	return d, nil
}

func (a Amount) IsPositive() bool {
	d, err := a.Decimal()
	return err == nil && d.IsPositive()
}

func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount(d.String())
}

func (a Amount) String() string {
	return string(a)
}
