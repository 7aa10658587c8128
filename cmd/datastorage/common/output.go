package common

import (
	"encoding/base64"
	"encoding/hex"
	"io"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"go.firedancer.io/datastorage/pkg/accounts"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"go.firedancer.io/datastorage/pkg/fees"
	"gopkg.in/yaml.v3"
)

type AccountMetaOutput struct {
	Name     string `yaml:"name"`
	Pubkey   string `yaml:"pubkey"`
	Writable bool   `yaml:"writable"`
	Signer   bool   `yaml:"signer"`
}

// InstructionOutput is the printable form of an instruction. RentLamports
// is the balance the instruction moves: funded on create and grow, refunded
// on shrink. FeeLamports is the fee of a transaction carrying only this
// instruction.
type InstructionOutput struct {
	ProgramID    string              `yaml:"program_id"`
	Instruction  string              `yaml:"instruction"`
	EditVariant  string              `yaml:"edit_variant,omitempty"`
	Accounts     []AccountMetaOutput `yaml:"accounts"`
	DataBase58   string              `yaml:"data_base58,omitempty"`
	DataBase64   string              `yaml:"data_base64,omitempty"`
	RentLamports *uint64             `yaml:"rent_lamports,omitempty"`
	FeeLamports  *uint64             `yaml:"fee_lamports,omitempty"`
}

// NewInstructionOutput describes an assembled instruction, naming its
// accounts by role.
func NewInstructionOutput(instr *solana.GenericInstruction) (*InstructionOutput, error) {
	data, err := instr.Data()
	if err != nil {
		return nil, err
	}

	decoded, err := datastorage.DecodeInstruction(instr.Accounts(), data)
	if err != nil {
		return nil, err
	}

	out := NewDecodedOutput(instr.ProgramID(), decoded)
	out.DataBase58 = base58.Encode(data)
	out.DataBase64 = base64.StdEncoding.EncodeToString(data)
	return out, nil
}

func NewDecodedOutput(programID solana.PublicKey, decoded *datastorage.DecodedInstruction) *InstructionOutput {
	out := &InstructionOutput{
		ProgramID:   programID.String(),
		Instruction: decoded.Type.String(),
	}
	if decoded.Type == datastorage.InstrTypeEdit {
		out.EditVariant = decoded.Variant.String()
	}
	for _, acct := range decoded.Accounts {
		out.Accounts = append(out.Accounts, AccountMetaOutput{
			Name:     acct.Name,
			Pubkey:   acct.PublicKey.String(),
			Writable: acct.IsWritable,
			Signer:   acct.IsSigner,
		})
	}
	return out
}

type AccountOutput struct {
	Address       string `yaml:"address,omitempty"`
	Lamports      uint64 `yaml:"lamports,omitempty"`
	Authority     string `yaml:"authority"`
	Immutable     bool   `yaml:"immutable"`
	Label         string `yaml:"label"`
	LastUpdated   string `yaml:"last_updated"`
	CanonicalBump uint8  `yaml:"canonical_bump"`
	Initialized   bool   `yaml:"initialized"`
	DataLen       int    `yaml:"data_len"`
	DataHex       string `yaml:"data_hex"`
	RentState     string `yaml:"rent_state,omitempty"`
	AddressValid  *bool  `yaml:"address_valid,omitempty"`
}

func NewAccountOutput(acct *datastorage.Account) *AccountOutput {
	return &AccountOutput{
		Authority:     acct.Authority.String(),
		Immutable:     acct.IsImmutable(),
		Label:         acct.LabelString(),
		LastUpdated:   time.Unix(acct.LastUpdated, 0).UTC().Format(time.RFC3339),
		CanonicalBump: acct.CanonicalBump,
		Initialized:   acct.IsInitialized,
		DataLen:       len(acct.Data),
		DataHex:       hex.EncodeToString(acct.Data),
	}
}

// NewLedgerAccountOutput adds the ledger address, balance and rent state to
// the decoded account.
func NewLedgerAccountOutput(ledgerAcct *accounts.Account, acct *datastorage.Account, rent *datastorage.Rent) *AccountOutput {
	out := NewAccountOutput(acct)
	out.Address = ledgerAcct.Key.String()
	out.Lamports = ledgerAcct.Lamports
	out.RentState = fees.RentStateOf(ledgerAcct, rent).String()
	return out
}

// WriteYAML writes each value as its own YAML document.
func WriteYAML(w io.Writer, values ...interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return enc.Close()
}
