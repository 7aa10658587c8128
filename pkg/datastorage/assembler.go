package datastorage

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	dssolana "go.firedancer.io/datastorage/pkg/solana"
	"k8s.io/klog/v2"
)

// EditVariant selects the account list of an edit instruction.
type EditVariant uint8

const (
	EditVariantEqual EditVariant = iota
	EditVariantShrink
	EditVariantGrow
)

func (v EditVariant) String() string {
	switch v {
	case EditVariantEqual:
		return "equal"
	case EditVariantShrink:
		return "shrink"
	case EditVariantGrow:
		return "grow"
	}
	return fmt.Sprintf("EditVariant(%d)", uint8(v))
}

// SelectEditVariant compares the new data length against the length
// currently stored on the ledger.
func SelectEditVariant(oldLen, newLen int) EditVariant {
	if newLen == oldLen {
		return EditVariantEqual
	} else if newLen < oldLen {
		return EditVariantShrink
	} else {
		return EditVariantGrow
	}
}

type CreateAccounts struct {
	Account   solana.PublicKey
	Authority solana.PublicKey
	Funder    solana.PublicKey
}

// EditAccounts holds every account an edit may need. RentReceiver is only
// used when shrinking and Funder only when growing.
type EditAccounts struct {
	Account      solana.PublicKey
	Authority    solana.PublicKey
	RentReceiver solana.PublicKey
	Funder       solana.PublicKey
}

type CloseAccounts struct {
	Account   solana.PublicKey
	Authority solana.PublicKey
	Receiver  solana.PublicKey
}

// Assembler builds instructions for one deployment of the program.
type Assembler struct {
	ProgramID solana.PublicKey
}

func NewAssembler(programID solana.PublicKey) *Assembler {
	return &Assembler{ProgramID: programID}
}

// DeriveAddress is DeriveAddress for the assembler's program.
func (a *Assembler) DeriveAddress(deriver dssolana.Deriver, authority solana.PublicKey, label string) (solana.PublicKey, uint8, error) {
	return DeriveAddress(deriver, a.ProgramID, authority, label)
}

func (a *Assembler) newInstruction(payload Payload, accts solana.AccountMetaSlice) (*solana.GenericInstruction, error) {
	data, err := EncodePayload(payload)
	if err != nil {
		return nil, err
	}

	klog.V(3).Infof("assembled %s instruction: %d accounts, %d data bytes", payload.Type(), len(accts), len(data))
	return solana.NewInstruction(a.ProgramID, accts, data), nil
}

// Create builds an instruction creating a new account. accts.Account must
// be the address derived for (accts.Authority, label); it is not checked.
// Passing the system program as authority creates an immutable account.
func (a *Assembler) Create(accts CreateAccounts, label string, data []byte) (*solana.GenericInstruction, error) {
	encodedLabel, err := EncodeLabel(label)
	if err != nil {
		return nil, err
	}

	if accts.Funder.IsZero() {
		return nil, fmt.Errorf("%w: funder", ErrMissingAccount)
	}

	authorityIsSigner := accts.Authority != solana.SystemProgramID

	return a.newInstruction(
		&InstrCreate{Label: encodedLabel, Data: data},
		solana.AccountMetaSlice{
			solana.NewAccountMeta(accts.Account, true, false),
			solana.NewAccountMeta(accts.Authority, false, authorityIsSigner),
			solana.NewAccountMeta(accts.Funder, true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		},
	)
}

// Edit builds an instruction replacing the account's data. oldDataLen must
// be the data length currently stored on the ledger; a stale value yields
// an instruction the program rejects.
func (a *Assembler) Edit(accts EditAccounts, oldDataLen int, newData []byte) (*solana.GenericInstruction, error) {
	if accts.Authority == solana.SystemProgramID {
		return nil, ErrImmutableAccount
	}

	metas := solana.AccountMetaSlice{
		solana.NewAccountMeta(accts.Account, true, false),
		solana.NewAccountMeta(accts.Authority, false, true),
	}

	variant := SelectEditVariant(oldDataLen, len(newData))
	switch variant {
	case EditVariantEqual:
	case EditVariantShrink:
		if accts.RentReceiver.IsZero() {
			return nil, fmt.Errorf("%w: rent receiver", ErrMissingAccount)
		}
		metas = append(metas, solana.NewAccountMeta(accts.RentReceiver, true, false))
	case EditVariantGrow:
		if accts.Funder.IsZero() {
			return nil, fmt.Errorf("%w: funder", ErrMissingAccount)
		}
		metas = append(metas,
			solana.NewAccountMeta(accts.Funder, true, true),
			solana.NewAccountMeta(solana.SystemProgramID, false, false),
		)
	}

	klog.V(2).Infof("edit %s: %d -> %d bytes (%s)", accts.Account, oldDataLen, len(newData), variant)
	return a.newInstruction(&InstrEdit{NewData: newData}, metas)
}

// Close builds an instruction that closes the account and sends its whole
// balance to accts.Receiver.
func (a *Assembler) Close(accts CloseAccounts) (*solana.GenericInstruction, error) {
	if accts.Authority == solana.SystemProgramID {
		return nil, ErrImmutableAccount
	}

	if accts.Receiver.IsZero() {
		return nil, fmt.Errorf("%w: receiver", ErrMissingAccount)
	}

	return a.newInstruction(
		&InstrClose{},
		solana.AccountMetaSlice{
			solana.NewAccountMeta(accts.Account, true, false),
			solana.NewAccountMeta(accts.Authority, false, true),
			solana.NewAccountMeta(accts.Receiver, true, false),
		},
	)
}
