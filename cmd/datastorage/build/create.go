package build

import (
	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/datastorage"
)

var (
	createCmd = cobra.Command{
		Use:   "create",
		Short: "Build a CreateNewDataStorageAccount instruction",
		Args:  cobra.NoArgs,
		RunE:  runCreate,
	}

	createTarget target
	createData   common.DataFlags
	createFunder string
)

func init() {
	createTarget.register(&createCmd)
	registerDataFlags(&createCmd, &createData)
	createCmd.Flags().StringVarP(&createFunder, "funder", "f", "", "Account paying the rent-exempt balance")
}

func registerDataFlags(c *cobra.Command, d *common.DataFlags) {
	c.Flags().StringVarP(&d.Text, "data", "d", "", "Account data as text")
	c.Flags().StringVar(&d.Hex, "data-hex", "", "Account data as hex")
	c.Flags().StringVar(&d.Base58, "data-base58", "", "Account data as base58")
	c.Flags().StringVar(&d.File, "data-file", "", "Read account data from file")
}

func runCreate(c *cobra.Command, _ []string) error {
	assembler, err := newAssembler()
	if err != nil {
		return err
	}

	account, authority, err := createTarget.resolve(assembler)
	if err != nil {
		return err
	}

	funder, err := common.ParsePubkey("funder", createFunder)
	if err != nil {
		return err
	}

	data, err := createData.Bytes()
	if err != nil {
		return err
	}

	instr, err := assembler.Create(datastorage.CreateAccounts{
		Account:   account,
		Authority: authority,
		Funder:    funder,
	}, createTarget.label, data)
	if err != nil {
		return err
	}

	cost := datastorage.DefaultRent.CreateCost(len(data))
	return writeInstruction(c, instr, funder, &cost)
}
