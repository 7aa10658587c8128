package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "datastorage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8899", cfg.RPC)
	assert.Equal(t, rpc.CommitmentConfirmed, cfg.CommitmentType())

	_, err = cfg.Program()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfig_Load(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	path := writeConfig(t, "rpc: https://api.devnet.solana.com\nprogram_id: "+programID.String()+"\ncommitment: finalized\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.devnet.solana.com", cfg.RPC)
	assert.Equal(t, rpc.CommitmentFinalized, cfg.CommitmentType())

	loaded, err := cfg.Program()
	require.NoError(t, err)
	assert.Equal(t, programID, loaded)
}

func TestConfig_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "commitment: processed\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultRPC, cfg.RPC)
	assert.Equal(t, rpc.CommitmentProcessed, cfg.CommitmentType())
}

func TestConfig_Invalid(t *testing.T) {
	for _, content := range []string{
		"commitment: eventually\n",
		"program_id: not-a-key\n",
		"rpc: \"\"\n",
		"rpcc: typo\n",
		"rpc: [unterminated\n",
	} {
		_, err := Load(writeConfig(t, content))
		assert.ErrorIs(t, err, ErrInvalidConfig, content)
	}
}

func TestConfig_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_SaveLoad(t *testing.T) {
	cfg := Default()
	cfg.ProgramID = solana.NewWallet().PublicKey().String()
	path := filepath.Join(t.TempDir(), "out.yaml")

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
