package inspect

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.firedancer.io/datastorage/pkg/datastorage"
)

func TestParseAccountMeta(t *testing.T) {
	pk := solana.NewWallet().PublicKey()

	meta, err := parseAccountMeta(pk.String())
	require.NoError(t, err)
	assert.Equal(t, solana.NewAccountMeta(pk, false, false), meta)

	meta, err = parseAccountMeta(pk.String() + ":w:s")
	require.NoError(t, err)
	assert.Equal(t, solana.NewAccountMeta(pk, true, true), meta)

	meta, err = parseAccountMeta(pk.String() + ":s")
	require.NoError(t, err)
	assert.True(t, meta.IsSigner)
	assert.False(t, meta.IsWritable)

	_, err = parseAccountMeta(pk.String() + ":x")
	assert.Error(t, err)
}

func TestDescribePayload(t *testing.T) {
	label, err := datastorage.EncodeLabel("hello")
	require.NoError(t, err)

	assert.Equal(t, createPayload{Label: "hello", DataLen: 2, DataHex: "0102"},
		describePayload(&datastorage.InstrCreate{Label: label, Data: []byte{1, 2}}))
	assert.Equal(t, editPayload{NewDataLen: 1, NewDataHex: "ff"},
		describePayload(&datastorage.InstrEdit{NewData: []byte{0xff}}))
	assert.Equal(t, struct{}{}, describePayload(&datastorage.InstrClose{}))
}
