package inspect

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/datastorage"
)

var (
	Cmd = cobra.Command{
		Use:   "inspect <instruction data>",
		Short: "Decode instruction data",
		Long: "Decode instruction data given as hex or base58.\n\n" +
			"Accounts are passed in order with --account PUBKEY[:w][:s], marking\n" +
			"writable and signer accounts.",
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	accountFlags []string
)

func init() {
	Cmd.Flags().StringArrayVar(&accountFlags, "account", nil, "Instruction account as PUBKEY[:w][:s], repeatable")
}

func parseAccountMeta(s string) (*solana.AccountMeta, error) {
	parts := strings.Split(s, ":")
	pk, err := common.ParsePubkey("account", parts[0])
	if err != nil {
		return nil, err
	}

	meta := solana.NewAccountMeta(pk, false, false)
	for _, flag := range parts[1:] {
		switch flag {
		case "w":
			meta.IsWritable = true
		case "s":
			meta.IsSigner = true
		default:
			return nil, fmt.Errorf("unknown account flag %q in %s", flag, s)
		}
	}
	return meta, nil
}

type output struct {
	common.InstructionOutput `yaml:",inline"`
	Payload                  interface{} `yaml:"payload"`
}

type createPayload struct {
	Label   string `yaml:"label"`
	DataLen int    `yaml:"data_len"`
	DataHex string `yaml:"data_hex"`
}

type editPayload struct {
	NewDataLen int    `yaml:"new_data_len"`
	NewDataHex string `yaml:"new_data_hex"`
}

func describePayload(p datastorage.Payload) interface{} {
	switch p := p.(type) {
	case *datastorage.InstrCreate:
		return createPayload{
			Label:   strings.TrimRight(string(p.Label[:]), "\x00"),
			DataLen: len(p.Data),
			DataHex: fmt.Sprintf("%x", p.Data),
		}
	case *datastorage.InstrEdit:
		return editPayload{NewDataLen: len(p.NewData), NewDataHex: fmt.Sprintf("%x", p.NewData)}
	}
	return struct{}{}
}

func run(c *cobra.Command, args []string) error {
	programID, err := common.Program()
	if err != nil {
		return err
	}

	data, err := common.DecodeBytes(args[0])
	if err != nil {
		return err
	}

	metas := make([]*solana.AccountMeta, 0, len(accountFlags))
	for _, s := range accountFlags {
		meta, err := parseAccountMeta(s)
		if err != nil {
			return err
		}
		metas = append(metas, meta)
	}

	datastorage.RegisterInstructionDecoder(programID)
	decoded, err := solana.DecodeInstruction(programID, metas, data)
	if err != nil {
		return err
	}

	inst, ok := decoded.(*datastorage.DecodedInstruction)
	if !ok {
		return fmt.Errorf("unexpected decoder result %T", decoded)
	}

	return common.WriteYAML(c.OutOrStdout(), output{
		InstructionOutput: *common.NewDecodedOutput(programID, inst),
		Payload:           describePayload(inst.Payload),
	})
}
