package datastorage

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.firedancer.io/datastorage/pkg/accounts"
)

func newLedgerAccount(t *testing.T, key solana.PublicKey, acct *Account) *accounts.Account {
	data, err := acct.marshal()
	require.NoError(t, err)

	return &accounts.Account{
		Key:       key,
		Lamports:  DefaultRent.CreateCost(len(acct.Data)),
		Data:      data,
		Owner:     testProgramID,
		RentEpoch: 0,
	}
}

func TestLoad_LoadAccount(t *testing.T) {
	ctx := context.Background()
	mem := accounts.NewMemAccounts()
	addr := solana.NewWallet().PublicKey()
	acct := newTestAccount(t, "stored", []byte("payload"))
	mem.SetAccount(newLedgerAccount(t, addr, acct))

	loaded, err := LoadAccount(ctx, mem, testProgramID, addr)
	require.NoError(t, err)
	assert.Equal(t, acct.Authority, loaded.Authority)
	assert.Equal(t, "stored", loaded.LabelString())
	assert.Equal(t, []byte("payload"), loaded.Data)
}

func TestLoad_NotFound(t *testing.T) {
	ctx := context.Background()
	mem := accounts.NewMemAccounts()
	addr := solana.NewWallet().PublicKey()

	_, err := LoadAccount(ctx, mem, testProgramID, addr)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLoad_Closed(t *testing.T) {
	ctx := context.Background()
	mem := accounts.NewMemAccounts()
	addr := solana.NewWallet().PublicKey()
	ledgerAcct := newLedgerAccount(t, addr, newTestAccount(t, "closing", []byte{1}))
	mem.SetAccount(ledgerAcct)

	// drained but not yet purged
	ledgerAcct.Lamports = 0
	_, err := LoadAccount(ctx, mem, testProgramID, addr)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	mem.DeleteAccount(addr)
	_, err = LoadAccount(ctx, mem, testProgramID, addr)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLoad_WrongOwner(t *testing.T) {
	ctx := context.Background()
	mem := accounts.NewMemAccounts()
	addr := solana.NewWallet().PublicKey()
	ledgerAcct := newLedgerAccount(t, addr, newTestAccount(t, "owned", nil))
	ledgerAcct.Owner = solana.SystemProgramID
	mem.SetAccount(ledgerAcct)

	_, err := LoadAccount(ctx, mem, testProgramID, addr)
	assert.ErrorIs(t, err, ErrInvalidAccountOwner)
}

func TestLoad_Uninitialized(t *testing.T) {
	ctx := context.Background()
	mem := accounts.NewMemAccounts()
	addr := solana.NewWallet().PublicKey()
	acct := newTestAccount(t, "uninit", nil)
	acct.IsInitialized = false
	mem.SetAccount(newLedgerAccount(t, addr, acct))

	_, err := LoadAccount(ctx, mem, testProgramID, addr)
	assert.ErrorIs(t, err, ErrUninitializedAccount)
}

func TestLoad_Truncated(t *testing.T) {
	ctx := context.Background()
	mem := accounts.NewMemAccounts()
	addr := solana.NewWallet().PublicKey()
	ledgerAcct := newLedgerAccount(t, addr, newTestAccount(t, "short", []byte{1, 2, 3}))
	ledgerAcct.Data = ledgerAcct.Data[:len(ledgerAcct.Data)-1]
	mem.SetAccount(ledgerAcct)

	_, err := LoadAccount(ctx, mem, testProgramID, addr)
	assert.ErrorIs(t, err, ErrLayout)
}
