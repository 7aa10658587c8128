package solana

import (
	"errors"
	"fmt"
	"math"

	"filippo.io/edwards25519"
	"github.com/gagliardetto/solana-go"
	"github.com/minio/sha256-simd"
)

const MaxSeeds = 16
const MaxSeedLen = 32
const PdaMarker = "ProgramDerivedAddress"

var (
	ErrSeedLength          = errors.New("Max seeds (16) exceeded")
	ErrOnCurveInvalidSeeds = errors.New("Invalid seeds - generated address must be off-curve")
	ErrNoViableBump        = errors.New("Unable to find a viable program address bump seed")
)

// Deriver finds the canonical program derived address for a seed tuple.
type Deriver interface {
	FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error)
}

// DefaultDeriver delegates to solana-go.
var DefaultDeriver Deriver = solanaGoDeriver{}

type solanaGoDeriver struct{}

func (solanaGoDeriver) FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(seeds, programID)
}

// OffCurveDeriver searches bump seeds from 255 downward using
// CreateProgramAddress. It needs no RPC and no solana-go internals.
type OffCurveDeriver struct{}

func (OffCurveDeriver) FindProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return solana.PublicKey{}, 0, ErrSeedLength
	}

	for bumpSeed := uint8(math.MaxUint8); bumpSeed > 0; bumpSeed-- {
		addr, err := CreateProgramAddress(withBump(seeds, bumpSeed), programID)
		if err == nil {
			return addr, bumpSeed, nil
		} else if !errors.Is(err, ErrOnCurveInvalidSeeds) {
			return solana.PublicKey{}, 0, err
		}
	}

	return solana.PublicKey{}, 0, ErrNoViableBump
}

// VerifyProgramAddress reports whether seeds plus bump hash to expected.
func VerifyProgramAddress(seeds [][]byte, bump uint8, programID solana.PublicKey, expected solana.PublicKey) bool {
	addr, err := CreateProgramAddress(withBump(seeds, bump), programID)
	return err == nil && addr == expected
}

func withBump(seeds [][]byte, bump uint8) [][]byte {
	out := make([][]byte, 0, len(seeds)+1)
	out = append(out, seeds...)
	return append(out, []byte{bump})
}

// CreateProgramAddress hashes seeds, programID and the PDA marker, and
// rejects hashes that decode to an ed25519 point.
func CreateProgramAddress(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, error) {
	if len(seeds) > MaxSeeds {
		return solana.PublicKey{}, ErrSeedLength
	}

	hasher := sha256.New()
	for i, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return solana.PublicKey{}, fmt.Errorf("%w: seed %d is %d bytes", ErrSeedLength, i, len(seed))
		}
		hasher.Write(seed)
	}
	hasher.Write(programID[:])
	hasher.Write([]byte(PdaMarker))

	var addr solana.PublicKey
	copy(addr[:], hasher.Sum(nil))

	if IsOnCurve(addr[:]) {
		return solana.PublicKey{}, ErrOnCurveInvalidSeeds
	}
	return addr, nil
}

// IsOnCurve checks if 'b' is a valid compressed ed25519 point
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
