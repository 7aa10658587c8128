package datastorage

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccount(t *testing.T, label string, data []byte) *Account {
	encodedLabel, err := EncodeLabel(label)
	require.NoError(t, err)

	return &Account{
		Authority:     solana.NewWallet().PublicKey(),
		Label:         encodedLabel,
		LastUpdated:   1_717_171_717,
		CanonicalBump: 253,
		IsInitialized: true,
		Data:          data,
	}
}

func TestLayout_DecodeAccount_Offsets(t *testing.T) {
	authority := solana.NewWallet().PublicKey()

	buf := make([]byte, HeaderSize+4)
	copy(buf[0:32], authority[:])
	copy(buf[32:62], "PooriaGG..")
	binary.LittleEndian.PutUint64(buf[62:70], uint64(1700000000))
	buf[70] = 251
	buf[71] = 1
	binary.LittleEndian.PutUint16(buf[72:74], 4)
	copy(buf[74:], []byte{0xde, 0xad, 0xbe, 0xef})

	acct, err := DecodeAccount(buf)
	require.NoError(t, err)

	assert.Equal(t, authority, acct.Authority)
	assert.Equal(t, "PooriaGG..", acct.LabelString())
	assert.Equal(t, int64(1700000000), acct.LastUpdated)
	assert.Equal(t, uint8(251), acct.CanonicalBump)
	assert.True(t, acct.IsInitialized)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, acct.Data)
	assert.Equal(t, 78, acct.Size())
}

func TestLayout_RoundTrip(t *testing.T) {
	for _, dataLen := range []int{0, 1, 10, 1232, MaxDataLength} {
		data := bytes.Repeat([]byte{0xab}, dataLen)
		acct := newTestAccount(t, "some label", data)

		buf, err := acct.marshal()
		require.NoError(t, err)
		assert.Equal(t, AccountSize(dataLen), len(buf))

		decoded, err := DecodeAccount(buf)
		require.NoError(t, err)

		assert.Equal(t, acct.Authority, decoded.Authority)
		assert.Equal(t, acct.Label, decoded.Label)
		assert.Equal(t, "some label", decoded.LabelString())
		assert.Equal(t, acct.LastUpdated, decoded.LastUpdated)
		assert.Equal(t, acct.CanonicalBump, decoded.CanonicalBump)
		assert.Equal(t, acct.IsInitialized, decoded.IsInitialized)
		assert.Equal(t, data, decoded.Data)
	}
}

func TestLayout_FullWidthLabel(t *testing.T) {
	label := string(bytes.Repeat([]byte{'A'}, MaxLabelLength))
	acct := newTestAccount(t, label, nil)

	buf, err := acct.marshal()
	require.NoError(t, err)

	decoded, err := DecodeAccount(buf)
	require.NoError(t, err)
	assert.Equal(t, label, decoded.LabelString())
}

func TestLayout_NegativeLastUpdated(t *testing.T) {
	acct := newTestAccount(t, "x", nil)
	acct.LastUpdated = -42

	buf, err := acct.marshal()
	require.NoError(t, err)

	decoded, err := DecodeAccount(buf)
	require.NoError(t, err)
	assert.Equal(t, int64(-42), decoded.LastUpdated)
}

func TestLayout_ShortHeader(t *testing.T) {
	for _, n := range []int{0, 1, 32, HeaderSize - 1} {
		_, err := DecodeAccount(make([]byte, n))
		assert.ErrorIs(t, err, ErrLayout, "len %d", n)
	}
}

func TestLayout_DeclaredLengthExceedsBuffer(t *testing.T) {
	buf := make([]byte, HeaderSize)
	buf[OffsetIsInitialized] = 1
	binary.LittleEndian.PutUint16(buf[OffsetDataLength:], 2)

	_, err := DecodeAccount(buf)
	assert.ErrorIs(t, err, ErrLayout)

	buf = append(buf, 0x01)
	_, err = DecodeAccount(buf)
	assert.ErrorIs(t, err, ErrLayout)

	buf = append(buf, 0x02)
	acct, err := DecodeAccount(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, acct.Data)
}

func TestLayout_TrailingBytesIgnored(t *testing.T) {
	acct := newTestAccount(t, "trailing", []byte{1, 2, 3})

	buf, err := acct.marshal()
	require.NoError(t, err)
	buf = append(buf, 9, 9, 9)

	decoded, err := DecodeAccount(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, decoded.Data)
}

func TestLayout_DecodedDataDoesNotAlias(t *testing.T) {
	acct := newTestAccount(t, "alias", []byte{1, 2, 3})

	buf, err := acct.marshal()
	require.NoError(t, err)

	decoded, err := DecodeAccount(buf)
	require.NoError(t, err)

	buf[OffsetData] = 0xff
	assert.Equal(t, byte(1), decoded.Data[0])
}

func TestLayout_MarshalRejectsOversizedData(t *testing.T) {
	acct := newTestAccount(t, "big", make([]byte, MaxDataLength+1))

	_, err := acct.marshal()
	assert.ErrorIs(t, err, ErrDataTooLong)
}

func TestLayout_IsImmutable(t *testing.T) {
	acct := newTestAccount(t, "imm", nil)
	assert.False(t, acct.IsImmutable())

	acct.Authority = solana.SystemProgramID
	assert.True(t, acct.IsImmutable())
}
