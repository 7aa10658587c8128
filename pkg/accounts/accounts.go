package accounts

import (
	"bytes"
	"context"
	"io"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Accounts is a read-only view of ledger accounts. GetAccount returns a nil
// account and nil error when the address holds no account.
type Accounts interface {
	GetAccount(ctx context.Context, pubkey solana.PublicKey) (*Account, error)
}

type Account struct {
	Key        solana.PublicKey
	Lamports   uint64
	Data       []byte
	Owner      solana.PublicKey
	Executable bool
	RentEpoch  uint64
}

// Exists reports whether acct is a live account. Accounts drained to zero
// lamports are garbage collected by the runtime and count as absent.
func (acct *Account) Exists() bool {
	return acct != nil && acct.Lamports != 0
}

func (a *Account) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	key, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	a.Key = solana.PublicKeyFromBytes(key)
	a.Lamports, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	var dataLen uint64
	dataLen, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return err
	}
	if dataLen > uint64(decoder.Remaining()) {
		return io.ErrUnexpectedEOF
	}
	data, err := decoder.ReadNBytes(int(dataLen))
	if err != nil {
		return err
	}
	a.Data = bytes.Clone(data)
	owner, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	a.Owner = solana.PublicKeyFromBytes(owner)
	a.Executable, err = decoder.ReadBool()
	if err != nil {
		return err
	}
	a.RentEpoch, err = decoder.ReadUint64(bin.LE)
	return
}

func (a *Account) MarshalWithEncoder(encoder *bin.Encoder) error {
	_ = encoder.WriteBytes(a.Key[:], false)
	_ = encoder.WriteUint64(a.Lamports, bin.LE)
	_ = encoder.WriteUint64(uint64(len(a.Data)), bin.LE)
	_ = encoder.WriteBytes(a.Data, false)
	_ = encoder.WriteBytes(a.Owner[:], false)
	_ = encoder.WriteBool(a.Executable)
	return encoder.WriteUint64(a.RentEpoch, bin.LE)
}

// Marshal encodes the account record, key included, for dumping to disk.
func (a *Account) Marshal() []byte {
	buf := new(bytes.Buffer)
	_ = a.MarshalWithEncoder(bin.NewBinEncoder(buf))
	return buf.Bytes()
}

// Unmarshal decodes a record written by Marshal.
func Unmarshal(buf []byte) (*Account, error) {
	acct := new(Account)
	if err := acct.UnmarshalWithDecoder(bin.NewBinDecoder(buf)); err != nil {
		return nil, err
	}
	return acct, nil
}
