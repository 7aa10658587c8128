package accounts

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

type MemAccounts struct {
	Map map[solana.PublicKey]*Account
}

func NewMemAccounts() MemAccounts {
	return MemAccounts{
		Map: make(map[solana.PublicKey]*Account),
	}
}

func (m MemAccounts) GetAccount(_ context.Context, pubkey solana.PublicKey) (*Account, error) {
	return m.Map[pubkey], nil
}

func (m MemAccounts) SetAccount(acct *Account) {
	m.Map[acct.Key] = acct
}

func (m MemAccounts) DeleteAccount(pubkey solana.PublicKey) {
	delete(m.Map, pubkey)
}
