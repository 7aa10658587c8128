package datastorage

import (
	"bytes"
	"fmt"
	"math"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"k8s.io/klog/v2"
)

const (
	MaxLabelLength = 30
	MaxDataLength  = math.MaxUint16

	// authority(32) + label(30) + last_updated(8) + bump(1) + is_initialized(1) + data_len(2)
	HeaderSize = solana.PublicKeyLength + MaxLabelLength + 8 + 1 + 1 + 2
)

// Offsets into the account data.
const (
	OffsetAuthority     = 0
	OffsetLabel         = 32
	OffsetLastUpdated   = 62
	OffsetCanonicalBump = 70
	OffsetIsInitialized = 71
	OffsetDataLength    = 72
	OffsetData          = HeaderSize
)

// Account is the state of a data storage account as written by the program.
type Account struct {
	Authority     solana.PublicKey
	Label         [MaxLabelLength]byte
	LastUpdated   int64
	CanonicalBump uint8
	IsInitialized bool
	Data          []byte
}

// AccountSize returns the on-ledger size of an account holding dataLen bytes.
func AccountSize(dataLen int) int {
	return HeaderSize + dataLen
}

// DecodeAccount decodes raw account data. Bytes past the declared data
// length are ignored.
func DecodeAccount(buf []byte) (*Account, error) {
	acct := new(Account)
	if err := acct.UnmarshalWithDecoder(bin.NewBinDecoder(buf)); err != nil {
		return nil, err
	}
	return acct, nil
}

func (acct *Account) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	if decoder.Remaining() < HeaderSize {
		return fmt.Errorf("%w: account data is %d bytes, header requires %d", ErrLayout, decoder.Remaining(), HeaderSize)
	}

	authority, err := decoder.ReadBytes(solana.PublicKeyLength)
	if err != nil {
		return fmt.Errorf("%w: failed to read authority: %s", ErrLayout, err)
	}
	acct.Authority = solana.PublicKeyFromBytes(authority)

	label, err := decoder.ReadBytes(MaxLabelLength)
	if err != nil {
		return fmt.Errorf("%w: failed to read label: %s", ErrLayout, err)
	}
	copy(acct.Label[:], label)

	acct.LastUpdated, err = decoder.ReadInt64(bin.LE)
	if err != nil {
		return fmt.Errorf("%w: failed to read last_updated: %s", ErrLayout, err)
	}

	acct.CanonicalBump, err = decoder.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: failed to read canonical_bump: %s", ErrLayout, err)
	}

	acct.IsInitialized, err = decoder.ReadBool()
	if err != nil {
		return fmt.Errorf("%w: failed to read is_initialized: %s", ErrLayout, err)
	}
	if !acct.IsInitialized {
		klog.Warningf("decoded data storage account with is_initialized unset (authority %s)", acct.Authority)
	}

	dataLen, err := decoder.ReadUint16(bin.LE)
	if err != nil {
		return fmt.Errorf("%w: failed to read data length: %s", ErrLayout, err)
	}

	if int(dataLen) > decoder.Remaining() {
		return fmt.Errorf("%w: declared data length %d exceeds remaining %d bytes", ErrLayout, dataLen, decoder.Remaining())
	}

	data, err := decoder.ReadNBytes(int(dataLen))
	if err != nil {
		return fmt.Errorf("%w: failed to read data: %s", ErrLayout, err)
	}
	acct.Data = bytes.Clone(data)

	return nil
}

// marshalWithEncoder writes the account the way the program lays it out.
// Only the program writes accounts; this exists for fixtures.
func (acct *Account) marshalWithEncoder(encoder *bin.Encoder) error {
	if len(acct.Data) > MaxDataLength {
		return fmt.Errorf("%w: %d bytes", ErrDataTooLong, len(acct.Data))
	}

	var err error

	err = encoder.WriteBytes(acct.Authority[:], false)
	if err != nil {
		return err
	}

	err = encoder.WriteBytes(acct.Label[:], false)
	if err != nil {
		return err
	}

	err = encoder.WriteInt64(acct.LastUpdated, bin.LE)
	if err != nil {
		return err
	}

	err = encoder.WriteByte(acct.CanonicalBump)
	if err != nil {
		return err
	}

	err = encoder.WriteBool(acct.IsInitialized)
	if err != nil {
		return err
	}

	err = encoder.WriteUint16(uint16(len(acct.Data)), bin.LE)
	if err != nil {
		return err
	}

	return encoder.WriteBytes(acct.Data, false)
}

func (acct *Account) marshal() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := acct.marshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LabelString returns the label with its zero padding stripped.
func (acct *Account) LabelString() string {
	return string(bytes.TrimRight(acct.Label[:], "\x00"))
}

// IsImmutable reports whether the account was created with the system
// program as its authority, which makes it uneditable.
func (acct *Account) IsImmutable() bool {
	return acct.Authority == solana.SystemProgramID
}

// Size is the account's on-ledger size.
func (acct *Account) Size() int {
	return AccountSize(len(acct.Data))
}
