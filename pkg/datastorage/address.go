package datastorage

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	dssolana "go.firedancer.io/datastorage/pkg/solana"
)

// SeedPrefix is the first seed of every data storage account address.
const SeedPrefix = "data_storage_account"

// Seeds returns the seed tuple for a data storage account. The label seed is
// the zero-padded 30 byte form, which is what the program hashes.
func Seeds(authority solana.PublicKey, label [MaxLabelLength]byte) [][]byte {
	return [][]byte{
		[]byte(SeedPrefix),
		authority.Bytes(),
		label[:],
	}
}

// DeriveAddress finds the account address and canonical bump for
// (authority, label) under programID.
func DeriveAddress(deriver dssolana.Deriver, programID, authority solana.PublicKey, label string) (solana.PublicKey, uint8, error) {
	encodedLabel, err := EncodeLabel(label)
	if err != nil {
		return solana.PublicKey{}, 0, err
	}

	addr, bump, err := deriver.FindProgramAddress(Seeds(authority, encodedLabel), programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive data storage account address: %w", err)
	}

	return addr, bump, nil
}

// VerifyAccountAddress checks that addr is the address the program would
// derive from the account's stored authority, label and canonical bump.
func VerifyAccountAddress(programID, addr solana.PublicKey, acct *Account) error {
	if !dssolana.VerifyProgramAddress(Seeds(acct.Authority, acct.Label), acct.CanonicalBump, programID, addr) {
		return fmt.Errorf("%w: %s is not derived from authority %s and label %q", ErrAddressMismatch, addr, acct.Authority, acct.LabelString())
	}
	return nil
}
