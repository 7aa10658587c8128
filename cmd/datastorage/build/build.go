package build

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"go.firedancer.io/datastorage/pkg/fees"
	dssolana "go.firedancer.io/datastorage/pkg/solana"
)

var (
	Cmd = cobra.Command{
		Use:   "build",
		Short: "Assemble data storage instructions",
	}

	computeBudget fees.ComputeBudget
)

func init() {
	Cmd.PersistentFlags().Uint64Var(&computeBudget.UnitPrice, "compute-unit-price", 0, "Priority fee in micro-lamports per compute unit, for the fee estimate")
	Cmd.PersistentFlags().Uint32Var(&computeBudget.UnitLimit, "compute-unit-limit", fees.DefaultComputeUnitLimit, "Compute unit limit, for the fee estimate")

	Cmd.AddCommand(
		&createCmd,
		&editCmd,
		&closeCmd,
	)
}

// target identifies the data storage account an instruction acts on,
// either directly or through (authority, label).
type target struct {
	authority string
	label     string
	account   string
}

func (t *target) register(c *cobra.Command) {
	c.Flags().StringVarP(&t.authority, "authority", "a", "", "Authority public key (\"system\" for an immutable account)")
	c.Flags().StringVarP(&t.label, "label", "l", "", "Account label, used to derive the account address")
	c.Flags().StringVar(&t.account, "account", "", "Account address; skips derivation")
}

func (t *target) resolve(assembler *datastorage.Assembler) (account, authority solana.PublicKey, err error) {
	authority, err = common.ParsePubkey("authority", t.authority)
	if err != nil {
		return
	}

	if t.account != "" {
		account, err = common.ParsePubkey("account", t.account)
		return
	}

	account, _, err = assembler.DeriveAddress(dssolana.DefaultDeriver, authority, t.label)
	return
}

func newAssembler() (*datastorage.Assembler, error) {
	programID, err := common.Program()
	if err != nil {
		return nil, err
	}
	return datastorage.NewAssembler(programID), nil
}

// writeInstruction prints instr along with the fee of a transaction that
// carries it and is paid by feePayer.
func writeInstruction(c *cobra.Command, instr *solana.GenericInstruction, feePayer solana.PublicKey, rentLamports *uint64) error {
	out, err := common.NewInstructionOutput(instr)
	if err != nil {
		return err
	}
	out.RentLamports = rentLamports

	tx, err := solana.NewTransaction([]solana.Instruction{instr}, solana.Hash{}, solana.TransactionPayer(feePayer))
	if err != nil {
		return err
	}
	fee, err := fees.EstimateFee(tx, computeBudget)
	if err != nil {
		return err
	}
	out.FeeLamports = &fee

	return common.WriteYAML(c.OutOrStdout(), out)
}
