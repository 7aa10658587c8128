package datastorage

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// AccountStorageOverhead is the per-account byte overhead the runtime adds
// when computing rent.
const AccountStorageOverhead = 128

const SysvarRentStructLen = 17

var SysvarRentAddr = solana.SysVarRentPubkey

// Rent mirrors the rent sysvar.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         byte
}

// DefaultRent is the rent configuration of every public cluster.
var DefaultRent = Rent{LamportsPerByteYear: 3480, ExemptionThreshold: 2.0, BurnPercent: 50}

func (r *Rent) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	r.LamportsPerByteYear, err = decoder.ReadUint64(bin.LE)
	if err != nil {
		return fmt.Errorf("failed to read LamportsPerByteYear when decoding Rent: %w", err)
	}

	r.ExemptionThreshold, err = decoder.ReadFloat64(bin.LE)
	if err != nil {
		return fmt.Errorf("failed to read ExemptionThreshold when decoding Rent: %w", err)
	}

	r.BurnPercent, err = decoder.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read BurnPercent when decoding Rent: %w", err)
	}

	return
}

func (r *Rent) MarshalWithEncoder(encoder *bin.Encoder) error {
	_ = encoder.WriteUint64(r.LamportsPerByteYear, bin.LE)
	_ = encoder.WriteFloat64(r.ExemptionThreshold, bin.LE)
	return encoder.WriteByte(r.BurnPercent)
}

// DecodeRent decodes the data of the rent sysvar account.
func DecodeRent(data []byte) (*Rent, error) {
	if len(data) < SysvarRentStructLen {
		return nil, fmt.Errorf("%w: rent sysvar is %d bytes, expected %d", ErrLayout, len(data), SysvarRentStructLen)
	}

	rent := new(Rent)
	if err := rent.UnmarshalWithDecoder(bin.NewBinDecoder(data)); err != nil {
		return nil, err
	}
	return rent, nil
}

func (r *Rent) marshal() []byte {
	buf := new(bytes.Buffer)
	_ = r.MarshalWithEncoder(bin.NewBinEncoder(buf))
	return buf.Bytes()
}

// MinimumBalance is the rent-exempt balance of an account of size bytes.
func (r *Rent) MinimumBalance(size uint64) uint64 {
	bytesCost := (AccountStorageOverhead + size) * r.LamportsPerByteYear
	return uint64(float64(bytesCost) * r.ExemptionThreshold)
}

func (r *Rent) IsExempt(lamports uint64, size uint64) bool {
	return lamports >= r.MinimumBalance(size)
}

// CreateCost is the balance the funder pays when creating an account with
// dataLen bytes of data.
func (r *Rent) CreateCost(dataLen int) uint64 {
	return r.MinimumBalance(uint64(AccountSize(dataLen)))
}

// EditRentDelta is the amount the program moves when an account's data goes
// from oldLen to newLen bytes: paid by the funder when growing, refunded to
// the rent receiver when shrinking. The program truncates the exemption
// threshold to an integer.
func (r *Rent) EditRentDelta(oldLen, newLen int) uint64 {
	var delta int
	switch SelectEditVariant(oldLen, newLen) {
	case EditVariantEqual:
		return 0
	case EditVariantShrink:
		delta = oldLen - newLen
	case EditVariantGrow:
		delta = newLen - oldLen
	}
	return r.LamportsPerByteYear * uint64(delta) * uint64(r.ExemptionThreshold)
}
