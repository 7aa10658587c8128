package solana

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testProgramID = solana.PublicKeyFromBytes(bytes.Repeat([]byte{1}, 32))

func TestPda_OffCurveDeriver_MatchesSolanaGo(t *testing.T) {
	seeds := [][]byte{[]byte("data_storage_account"), bytes.Repeat([]byte{7}, 32), bytes.Repeat([]byte{65}, 30)}

	expectedAddr, expectedBump, err := DefaultDeriver.FindProgramAddress(seeds, testProgramID)
	require.NoError(t, err)

	addr, bump, err := OffCurveDeriver{}.FindProgramAddress(seeds, testProgramID)
	require.NoError(t, err)

	assert.Equal(t, expectedAddr, addr)
	assert.Equal(t, expectedBump, bump)
	assert.False(t, IsOnCurve(addr[:]))
}

func TestPda_Deterministic(t *testing.T) {
	seeds := [][]byte{[]byte("data_storage_account"), bytes.Repeat([]byte{9}, 32), []byte("hello")}

	addr1, bump1, err := OffCurveDeriver{}.FindProgramAddress(seeds, testProgramID)
	require.NoError(t, err)
	addr2, bump2, err := OffCurveDeriver{}.FindProgramAddress(seeds, testProgramID)
	require.NoError(t, err)

	assert.Equal(t, addr1, addr2)
	assert.Equal(t, bump1, bump2)
}

func TestPda_VerifyProgramAddress(t *testing.T) {
	seeds := [][]byte{[]byte("data_storage_account"), bytes.Repeat([]byte{3}, 32)}

	addr, bump, err := OffCurveDeriver{}.FindProgramAddress(seeds, testProgramID)
	require.NoError(t, err)

	assert.True(t, VerifyProgramAddress(seeds, bump, testProgramID, addr))
	assert.False(t, VerifyProgramAddress(seeds, bump, testProgramID, solana.SystemProgramID))
}

func TestPda_SeedTooLong(t *testing.T) {
	seeds := [][]byte{bytes.Repeat([]byte{1}, MaxSeedLen+1)}

	_, _, err := OffCurveDeriver{}.FindProgramAddress(seeds, testProgramID)
	assert.ErrorIs(t, err, ErrSeedLength)
}

func TestPda_TooManySeeds(t *testing.T) {
	seeds := make([][]byte, MaxSeeds)
	for i := range seeds {
		seeds[i] = []byte{byte(i)}
	}

	_, _, err := OffCurveDeriver{}.FindProgramAddress(seeds, testProgramID)
	assert.ErrorIs(t, err, ErrSeedLength)

	_, err = CreateProgramAddress(append(seeds, []byte{1}), testProgramID)
	assert.ErrorIs(t, err, ErrSeedLength)
}

func TestPda_CreateProgramAddress_MatchesSolanaGo(t *testing.T) {
	seeds := [][]byte{[]byte("data_storage_account"), bytes.Repeat([]byte{5}, 32)}

	addr, bump, err := OffCurveDeriver{}.FindProgramAddress(seeds, testProgramID)
	require.NoError(t, err)

	expected, err := solana.CreateProgramAddress(append(seeds, []byte{bump}), testProgramID)
	require.NoError(t, err)

	created, err := CreateProgramAddress(append(seeds, []byte{bump}), testProgramID)
	require.NoError(t, err)

	assert.Equal(t, expected, created)
	assert.Equal(t, addr, created)
}
