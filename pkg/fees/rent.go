package fees

import (
	"go.firedancer.io/datastorage/pkg/accounts"
	"go.firedancer.io/datastorage/pkg/datastorage"
)

type RentState uint8

const (
	RentStateUninitialized RentState = iota
	RentStateRentPaying
	RentStateRentExempt
)

func (s RentState) String() string {
	switch s {
	case RentStateUninitialized:
		return "uninitialized"
	case RentStateRentPaying:
		return "rent_paying"
	case RentStateRentExempt:
		return "rent_exempt"
	}
	return "unknown"
}

// RentStateOf classifies a ledger account. Data storage accounts are
// always created rent exempt, so anything else points at a misconfigured
// cluster or a foreign account.
func RentStateOf(acct *accounts.Account, rent *datastorage.Rent) RentState {
	if !acct.Exists() {
		return RentStateUninitialized
	} else if rent.IsExempt(acct.Lamports, uint64(len(acct.Data))) {
		return RentStateRentExempt
	} else {
		return RentStateRentPaying
	}
}
