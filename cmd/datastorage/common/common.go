// Package common holds the flags and helpers shared by datastorage
// subcommands.
package common

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.firedancer.io/datastorage/pkg/config"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"go.firedancer.io/datastorage/pkg/rpcclient"
	"k8s.io/klog/v2"
)

// Persistent flags, registered on the root command.
var (
	ConfigPath  string
	RPC         string
	ProgramID   string
	Commitment  string
	MetricsAddr string
)

// Config loads the config file and applies flag overrides.
func Config() (*config.Config, error) {
	cfg, err := config.Load(ConfigPath)
	if err != nil {
		return nil, err
	}

	if RPC != "" {
		cfg.RPC = RPC
	}
	if ProgramID != "" {
		cfg.ProgramID = ProgramID
	}
	if Commitment != "" {
		cfg.Commitment = Commitment
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Program() (solana.PublicKey, error) {
	cfg, err := Config()
	if err != nil {
		return solana.PublicKey{}, err
	}
	return cfg.Program()
}

func Client() (*rpcclient.RpcClient, *config.Config, error) {
	cfg, err := Config()
	if err != nil {
		return nil, nil, err
	}
	klog.V(2).Infof("using rpc %s (%s)", cfg.RPC, cfg.Commitment)
	return rpcclient.NewRpcClient(cfg.RPC, cfg.CommitmentType()), cfg, nil
}

// Rent fetches the rent sysvar, falling back to the defaults of the public
// clusters.
func Rent(ctx context.Context, client *rpcclient.RpcClient) *datastorage.Rent {
	rent, err := client.GetRent(ctx)
	if err != nil {
		klog.Warningf("failed to fetch rent sysvar, using defaults: %s", err)
		return &datastorage.DefaultRent
	}
	return rent
}

// ServeMetrics exposes prometheus metrics on MetricsAddr, if set.
func ServeMetrics() {
	if MetricsAddr == "" {
		return
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		klog.Infof("serving metrics on %s", MetricsAddr)
		if err := http.ListenAndServe(MetricsAddr, mux); err != nil {
			klog.Errorf("metrics server: %s", err)
		}
	}()
}

func ParsePubkey(name, s string) (solana.PublicKey, error) {
	if s == "" {
		return solana.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	if s == "system" {
		return solana.SystemProgramID, nil
	}
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return pk, nil
}

// ParseOptionalPubkey returns the zero key for an empty string.
func ParseOptionalPubkey(name, s string) (solana.PublicKey, error) {
	if s == "" {
		return solana.PublicKey{}, nil
	}
	return ParsePubkey(name, s)
}

// DataFlags selects the payload of a create or edit instruction.
type DataFlags struct {
	Text   string
	Hex    string
	Base58 string
	File   string
}

func (d *DataFlags) Bytes() ([]byte, error) {
	set := 0
	for _, s := range []string{d.Text, d.Hex, d.Base58, d.File} {
		if s != "" {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("only one of --data, --data-hex, --data-base58, --data-file may be set")
	}

	switch {
	case d.Hex != "":
		return hex.DecodeString(strings.TrimPrefix(d.Hex, "0x"))
	case d.Base58 != "":
		return base58.Decode(d.Base58)
	case d.File != "":
		return os.ReadFile(d.File)
	}
	return []byte(d.Text), nil
}

// DecodeBytes accepts hex (optionally 0x-prefixed) or, failing that, base58.
func DecodeBytes(s string) ([]byte, error) {
	if b, err := hex.DecodeString(strings.TrimPrefix(s, "0x")); err == nil {
		return b, nil
	}
	b, err := base58.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("input is neither hex nor base58")
	}
	return b, nil
}
