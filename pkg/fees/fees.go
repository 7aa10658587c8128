package fees

import (
	"errors"
	"math"
	"math/bits"

	"github.com/gagliardetto/solana-go"
	"github.com/ryanavella/wide"
	"k8s.io/klog/v2"
)

// There are currently two aspects of the tx fee cost model on Solana
// 1) fee per signature (5k lamports/sig)
// 2) prioritization fees set via a SetComputeUnitPrice instruction

const LamportsPerSignature = 5000

const microLamportsPerLamport = 1000000

// DefaultComputeUnitLimit is the budget of an instruction when the
// transaction does not set one.
const DefaultComputeUnitLimit = 200000

var (
	Secp256kPrecompileAddr = solana.MustPublicKeyFromBase58("KeccakSecp256k11111111111111111111111111111")
	Ed25519PrecompileAddr  = solana.MustPublicKeyFromBase58("Ed25519SigVerify111111111111111111111111111")
)

var ErrFeeOverflow = errors.New("ErrFeeOverflow")

// ComputeBudget holds the values a transaction sets through the compute
// budget program. UnitPrice is in micro-lamports per compute unit.
type ComputeBudget struct {
	UnitPrice uint64
	UnitLimit uint32
}

// PriorityFee rounds UnitPrice*UnitLimit micro-lamports up to whole
// lamports, saturating at math.MaxUint64.
func PriorityFee(budget ComputeBudget) uint64 {
	if budget.UnitPrice == 0 {
		return 0
	}

	computeUnitPrice := wide.Uint128FromUint64(budget.UnitPrice)
	computeUnitLimit := wide.Uint128FromUint64(uint64(budget.UnitLimit))

	// price < 2^64 and limit < 2^32, so the product fits
	microLamportFee := computeUnitPrice.Mul(computeUnitLimit)
	fee := microLamportFee.Add(wide.Uint128FromUint64(microLamportsPerLamport - 1)).Div(wide.Uint128FromUint64(microLamportsPerLamport))

	if fee.IsUint64() {
		return fee.Uint64()
	}
	return math.MaxUint64
}

// NumSignatures counts the transaction's required signatures plus the
// signatures verified by precompile instructions, which are charged too.
func NumSignatures(tx *solana.Transaction) uint64 {
	numSignatures := uint64(tx.Message.Header.NumRequiredSignatures)

	for _, instr := range tx.Message.Instructions {
		if int(instr.ProgramIDIndex) >= len(tx.Message.AccountKeys) {
			continue
		}
		programID := tx.Message.AccountKeys[instr.ProgramIDIndex]
		if programID == Secp256kPrecompileAddr || programID == Ed25519PrecompileAddr {
			if len(instr.Data) == 0 {
				continue
			} else {
				numSignatures += uint64(instr.Data[0])
			}
		}
	}

	return numSignatures
}

// EstimateFee returns the fee the fee payer is charged for tx.
func EstimateFee(tx *solana.Transaction, budget ComputeBudget) (uint64, error) {
	hi, baseTxFee := bits.Mul64(NumSignatures(tx), LamportsPerSignature)
	if hi != 0 {
		return 0, ErrFeeOverflow
	}

	totalTxFee, carry := bits.Add64(baseTxFee, PriorityFee(budget), 0)
	if carry != 0 {
		return 0, ErrFeeOverflow
	}

	klog.V(3).Infof("tx fee: %d (base %d)", totalTxFee, baseTxFee)
	return totalTxFee, nil
}
