package datastorage

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// DecodedInstruction is a payload together with its accounts, labelled by
// the role each position plays.
type DecodedInstruction struct {
	Type     InstrType
	Variant  EditVariant
	Payload  Payload
	Accounts []NamedAccount
}

type NamedAccount struct {
	Name string
	*solana.AccountMeta
}

var (
	createAccountNames     = []string{"account", "authority", "funder", "system_program"}
	editEqualAccountNames  = []string{"account", "authority"}
	editShrinkAccountNames = []string{"account", "authority", "rent_receiver"}
	editGrowAccountNames   = []string{"account", "authority", "funder", "system_program"}
	closeAccountNames      = []string{"account", "authority", "receiver"}
)

// DecodeInstruction decodes instruction data and names its accounts. The
// edit variant is inferred from the number of accounts.
func DecodeInstruction(accts []*solana.AccountMeta, data []byte) (*DecodedInstruction, error) {
	payload, err := DecodePayload(data)
	if err != nil {
		return nil, err
	}

	decoded := &DecodedInstruction{Type: payload.Type(), Payload: payload}

	var names []string
	switch payload.(type) {
	case *InstrCreate:
		names = createAccountNames
	case *InstrEdit:
		switch len(accts) {
		case len(editEqualAccountNames):
			decoded.Variant, names = EditVariantEqual, editEqualAccountNames
		case len(editShrinkAccountNames):
			decoded.Variant, names = EditVariantShrink, editShrinkAccountNames
		default:
			decoded.Variant, names = EditVariantGrow, editGrowAccountNames
		}
	case *InstrClose:
		names = closeAccountNames
	}

	if len(accts) < len(names) {
		return nil, fmt.Errorf("%w: %s expects %d accounts, got %d", ErrMissingAccount, decoded.Type, len(names), len(accts))
	}

	for i, meta := range accts {
		name := fmt.Sprintf("extra_%d", i)
		if i < len(names) {
			name = names[i]
		}
		decoded.Accounts = append(decoded.Accounts, NamedAccount{Name: name, AccountMeta: meta})
	}

	return decoded, nil
}

func instructionDecoder(accts []*solana.AccountMeta, data []byte) (interface{}, error) {
	return DecodeInstruction(accts, data)
}

// RegisterInstructionDecoder hooks DecodeInstruction into solana-go's
// instruction decoder registry for programID.
func RegisterInstructionDecoder(programID solana.PublicKey) {
	solana.RegisterInstructionDecoder(programID, instructionDecoder)
}
