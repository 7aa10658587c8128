package build

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"k8s.io/klog/v2"
)

var (
	editCmd = cobra.Command{
		Use:   "edit",
		Short: "Build an EditDataStorageAccount instruction",
		Long: "Build an EditDataStorageAccount instruction.\n\n" +
			"The account list depends on the data length currently stored on the\n" +
			"ledger. Pass it with --old-len, or omit it to read the account over RPC.",
		Args: cobra.NoArgs,
		RunE: runEdit,
	}

	editTarget       target
	editData         common.DataFlags
	editOldLen       int
	editRentReceiver string
	editFunder       string
)

func init() {
	editTarget.register(&editCmd)
	registerDataFlags(&editCmd, &editData)
	editCmd.Flags().IntVar(&editOldLen, "old-len", -1, "Data length currently stored in the account")
	editCmd.Flags().StringVar(&editRentReceiver, "rent-receiver", "", "Receives the rent refund when data shrinks")
	editCmd.Flags().StringVarP(&editFunder, "funder", "f", "", "Pays the additional rent when data grows")
}

func runEdit(c *cobra.Command, _ []string) error {
	assembler, err := newAssembler()
	if err != nil {
		return err
	}

	account, authority, err := editTarget.resolve(assembler)
	if err != nil {
		return err
	}

	rentReceiver, err := common.ParseOptionalPubkey("rent-receiver", editRentReceiver)
	if err != nil {
		return err
	}

	funder, err := common.ParseOptionalPubkey("funder", editFunder)
	if err != nil {
		return err
	}

	newData, err := editData.Bytes()
	if err != nil {
		return err
	}

	rent := datastorage.DefaultRent
	oldLen := editOldLen
	if oldLen < 0 {
		client, _, err := common.Client()
		if err != nil {
			return err
		}

		acct, err := datastorage.LoadAccount(c.Context(), client, assembler.ProgramID, account)
		if err != nil {
			return fmt.Errorf("cannot determine current data length, pass --old-len: %w", err)
		}
		oldLen = len(acct.Data)
		klog.Infof("account %s currently holds %d bytes", account, oldLen)

		rent = *common.Rent(c.Context(), client)
	}

	instr, err := assembler.Edit(datastorage.EditAccounts{
		Account:      account,
		Authority:    authority,
		RentReceiver: rentReceiver,
		Funder:       funder,
	}, oldLen, newData)
	if err != nil {
		return err
	}

	feePayer := authority
	if !funder.IsZero() {
		feePayer = funder
	}

	delta := rent.EditRentDelta(oldLen, len(newData))
	return writeInstruction(c, instr, feePayer, &delta)
}
