package build

import (
	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/datastorage"
)

var (
	closeCmd = cobra.Command{
		Use:   "close",
		Short: "Build a CloseDataStorageAccount instruction",
		Args:  cobra.NoArgs,
		RunE:  runClose,
	}

	closeTarget   target
	closeReceiver string
)

func init() {
	closeTarget.register(&closeCmd)
	closeCmd.Flags().StringVarP(&closeReceiver, "receiver", "r", "", "Receives the account's remaining balance")
}

func runClose(c *cobra.Command, _ []string) error {
	assembler, err := newAssembler()
	if err != nil {
		return err
	}

	account, authority, err := closeTarget.resolve(assembler)
	if err != nil {
		return err
	}

	receiver, err := common.ParsePubkey("receiver", closeReceiver)
	if err != nil {
		return err
	}

	instr, err := assembler.Close(datastorage.CloseAccounts{
		Account:   account,
		Authority: authority,
		Receiver:  receiver,
	})
	if err != nil {
		return err
	}

	return writeInstruction(c, instr, authority, nil)
}
