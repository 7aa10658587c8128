package datastorage

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	bin "github.com/gagliardetto/binary"
)

// InstrType is the leading byte of every instruction payload.
type InstrType uint8

const (
	InstrTypeCreate InstrType = iota
	InstrTypeEdit
	InstrTypeClose
)

func (t InstrType) String() string {
	switch t {
	case InstrTypeCreate:
		return "CreateNewDataStorageAccount"
	case InstrTypeEdit:
		return "EditDataStorageAccount"
	case InstrTypeClose:
		return "CloseDataStorageAccount"
	}
	return fmt.Sprintf("InstrType(%d)", uint8(t))
}

// Payload is one of *InstrCreate, *InstrEdit or *InstrClose.
type Payload interface {
	Type() InstrType
	MarshalWithEncoder(encoder *bin.Encoder) error
	isPayload()
}

type InstrCreate struct {
	Label [MaxLabelLength]byte
	Data  []byte
}

type InstrEdit struct {
	NewData []byte
}

type InstrClose struct{}

func (*InstrCreate) Type() InstrType { return InstrTypeCreate }
func (*InstrEdit) Type() InstrType   { return InstrTypeEdit }
func (*InstrClose) Type() InstrType  { return InstrTypeClose }

func (*InstrCreate) isPayload() {}
func (*InstrEdit) isPayload()   {}
func (*InstrClose) isPayload()  {}

// EncodeLabel converts label to its fixed-width wire form, zero padded on
// the right.
func EncodeLabel(label string) ([MaxLabelLength]byte, error) {
	var out [MaxLabelLength]byte
	if len(label) > MaxLabelLength {
		return out, fmt.Errorf("%w: %d bytes, max %d", ErrLabelTooLong, len(label), MaxLabelLength)
	}
	if !utf8.ValidString(label) {
		return out, ErrInvalidLabel
	}
	copy(out[:], label)
	return out, nil
}

func checkDataLength(data []byte) error {
	if len(data) > MaxDataLength {
		return fmt.Errorf("%w: %d bytes, max %d", ErrDataTooLong, len(data), MaxDataLength)
	}
	return nil
}

func (instr *InstrCreate) MarshalWithEncoder(encoder *bin.Encoder) error {
	var err error

	err = encoder.WriteByte(byte(InstrTypeCreate))
	if err != nil {
		return err
	}

	err = encoder.WriteBytes(instr.Label[:], false)
	if err != nil {
		return err
	}

	return encoder.WriteBytes(instr.Data, false)
}

func (instr *InstrCreate) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	label, err := decoder.ReadBytes(MaxLabelLength)
	if err != nil {
		return fmt.Errorf("%w: create payload too short for label", ErrInvalidInstructionData)
	}
	copy(instr.Label[:], label)

	data, err := decoder.ReadNBytes(decoder.Remaining())
	instr.Data = bytes.Clone(data)
	return err
}

func (instr *InstrEdit) MarshalWithEncoder(encoder *bin.Encoder) error {
	err := encoder.WriteByte(byte(InstrTypeEdit))
	if err != nil {
		return err
	}

	return encoder.WriteBytes(instr.NewData, false)
}

func (instr *InstrEdit) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	data, err := decoder.ReadNBytes(decoder.Remaining())
	instr.NewData = bytes.Clone(data)
	return err
}

func (instr *InstrClose) MarshalWithEncoder(encoder *bin.Encoder) error {
	return encoder.WriteByte(byte(InstrTypeClose))
}

// EncodePayload serializes p, discriminator first.
func EncodePayload(p Payload) ([]byte, error) {
	switch instr := p.(type) {
	case *InstrCreate:
		if err := checkDataLength(instr.Data); err != nil {
			return nil, err
		}
	case *InstrEdit:
		if err := checkDataLength(instr.NewData); err != nil {
			return nil, err
		}
	case *InstrClose:
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownInstruction, p)
	}

	buf := new(bytes.Buffer)
	if err := p.MarshalWithEncoder(bin.NewBinEncoder(buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodePayload parses instruction data produced by EncodePayload.
func DecodePayload(data []byte) (Payload, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty instruction data", ErrInvalidInstructionData)
	}

	decoder := bin.NewBinDecoder(data[1:])

	switch InstrType(data[0]) {
	case InstrTypeCreate:
		instr := new(InstrCreate)
		if err := instr.UnmarshalWithDecoder(decoder); err != nil {
			return nil, err
		}
		return instr, nil
	case InstrTypeEdit:
		instr := new(InstrEdit)
		if err := instr.UnmarshalWithDecoder(decoder); err != nil {
			return nil, err
		}
		return instr, nil
	case InstrTypeClose:
		return new(InstrClose), nil
	}

	return nil, fmt.Errorf("%w: discriminator %d", ErrUnknownInstruction, data[0])
}
