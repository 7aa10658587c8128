package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const (
	DefaultRPC        = rpc.LocalNet_RPC
	DefaultCommitment = rpc.CommitmentConfirmed
)

var ErrInvalidConfig = errors.New("ErrInvalidConfig")

// Config selects the cluster and program deployment the CLI talks to.
type Config struct {
	RPC        string `yaml:"rpc"`
	ProgramID  string `yaml:"program_id"`
	Commitment string `yaml:"commitment"`
}

func Default() *Config {
	return &Config{
		RPC:        DefaultRPC,
		Commitment: string(DefaultCommitment),
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	klog.V(2).Infof("loaded config from %s: rpc=%s commitment=%s", path, cfg.RPC, cfg.Commitment)
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.RPC == "" {
		return fmt.Errorf("%w: rpc endpoint is empty", ErrInvalidConfig)
	}

	switch rpc.CommitmentType(c.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return fmt.Errorf("%w: unknown commitment %q", ErrInvalidConfig, c.Commitment)
	}

	if c.ProgramID != "" {
		if _, err := solana.PublicKeyFromBase58(c.ProgramID); err != nil {
			return fmt.Errorf("%w: program_id: %s", ErrInvalidConfig, err)
		}
	}

	return nil
}

// Program returns the configured program ID.
func (c *Config) Program() (solana.PublicKey, error) {
	if c.ProgramID == "" {
		return solana.PublicKey{}, fmt.Errorf("%w: program_id is not set", ErrInvalidConfig)
	}
	return solana.PublicKeyFromBase58(c.ProgramID)
}

func (c *Config) CommitmentType() rpc.CommitmentType {
	return rpc.CommitmentType(c.Commitment)
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	out, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}
