package common

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"gopkg.in/yaml.v3"
)

func TestDataFlags(t *testing.T) {
	data, err := (&DataFlags{Text: "hello"}).Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	data, err = (&DataFlags{Hex: "0x010203"}).Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	data, err = (&DataFlags{Base58: "Ldp"}).Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte{9, 8, 7}, 0o644))
	data, err = (&DataFlags{File: path}).Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8, 7}, data)

	data, err = (&DataFlags{}).Bytes()
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = (&DataFlags{Text: "a", Hex: "01"}).Bytes()
	assert.Error(t, err)
}

func TestDecodeBytes(t *testing.T) {
	b, err := DecodeBytes("00ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, b)

	b, err = DecodeBytes("Ldp")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, b)

	_, err = DecodeBytes("0OIl")
	assert.Error(t, err)
}

func TestParsePubkey(t *testing.T) {
	pk, err := ParsePubkey("authority", "system")
	require.NoError(t, err)
	assert.Equal(t, solana.SystemProgramID, pk)

	_, err = ParsePubkey("authority", "")
	assert.EqualError(t, err, "--authority is required")

	pk, err = ParseOptionalPubkey("funder", "")
	require.NoError(t, err)
	assert.True(t, pk.IsZero())
}

func TestNewInstructionOutput(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	account := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()
	receiver := solana.NewWallet().PublicKey()

	instr, err := datastorage.NewAssembler(programID).Edit(datastorage.EditAccounts{
		Account:      account,
		Authority:    authority,
		RentReceiver: receiver,
	}, 10, []byte{1, 2})
	require.NoError(t, err)

	out, err := NewInstructionOutput(instr)
	require.NoError(t, err)

	assert.Equal(t, programID.String(), out.ProgramID)
	assert.Equal(t, "EditDataStorageAccount", out.Instruction)
	assert.Equal(t, "shrink", out.EditVariant)
	assert.Equal(t, []AccountMetaOutput{
		{Name: "account", Pubkey: account.String(), Writable: true},
		{Name: "authority", Pubkey: authority.String(), Signer: true},
		{Name: "rent_receiver", Pubkey: receiver.String(), Writable: true},
	}, out.Accounts)
	assert.Equal(t, "AQEC", out.DataBase64)
	assert.Equal(t, "LZP", out.DataBase58)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, out))

	var back InstructionOutput
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, *out, back)
}

func TestNewAccountOutput(t *testing.T) {
	acct := &datastorage.Account{
		Authority:     solana.SystemProgramID,
		LastUpdated:   0,
		CanonicalBump: 255,
		IsInitialized: true,
		Data:          []byte{0xab},
	}
	copy(acct.Label[:], "frozen")

	out := NewAccountOutput(acct)
	assert.True(t, out.Immutable)
	assert.Equal(t, "frozen", out.Label)
	assert.Equal(t, "1970-01-01T00:00:00Z", out.LastUpdated)
	assert.Equal(t, 1, out.DataLen)
	assert.Equal(t, "ab", out.DataHex)
}
