package datastorage

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.firedancer.io/datastorage/pkg/accounts"
)

// LoadAccount reads and decodes the data storage account at addr. A closed
// account is absent from the ledger and yields ErrAccountNotFound.
func LoadAccount(ctx context.Context, src accounts.Accounts, programID, addr solana.PublicKey) (*Account, error) {
	ledgerAcct, err := src.GetAccount(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", addr, err)
	}

	return DecodeLedgerAccount(programID, addr, ledgerAcct)
}

// DecodeLedgerAccount validates and decodes an account already fetched from
// the ledger. ledgerAcct may be nil.
func DecodeLedgerAccount(programID, addr solana.PublicKey, ledgerAcct *accounts.Account) (*Account, error) {
	if !ledgerAcct.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, addr)
	}

	if ledgerAcct.Owner != programID {
		return nil, fmt.Errorf("%w: %s is owned by %s", ErrInvalidAccountOwner, addr, ledgerAcct.Owner)
	}

	acct, err := DecodeAccount(ledgerAcct.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", addr, err)
	}

	if !acct.IsInitialized {
		return nil, fmt.Errorf("%w: %s", ErrUninitializedAccount, addr)
	}

	return acct, nil
}
