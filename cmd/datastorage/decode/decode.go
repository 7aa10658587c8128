package decode

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/accounts"
	"go.firedancer.io/datastorage/pkg/datastorage"
)

var (
	Cmd = cobra.Command{
		Use:   "decode [hex|base58]",
		Short: "Decode raw data storage account data",
		Long: "Decode raw data storage account data given as an argument or read\n" +
			"from --file. With --record, the file holds an account record written\n" +
			"by `fetch --save`, and the owner and address are checked as well.",
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}

	file    string
	record  bool
	address string
)

func init() {
	Cmd.Flags().StringVarP(&file, "file", "f", "", "Read account data from file")
	Cmd.Flags().BoolVar(&record, "record", false, "File is an account record written by fetch --save")
	Cmd.Flags().StringVar(&address, "address", "", "Verify the data against this account address")
}

func readInput(args []string) ([]byte, error) {
	switch {
	case len(args) == 1 && file != "":
		return nil, fmt.Errorf("pass either an argument or --file, not both")
	case len(args) == 1:
		return common.DecodeBytes(args[0])
	case file != "":
		return os.ReadFile(file)
	}
	return nil, fmt.Errorf("no input; pass account data or --file")
}

func run(c *cobra.Command, args []string) error {
	buf, err := readInput(args)
	if err != nil {
		return err
	}

	var out *common.AccountOutput
	var acct *datastorage.Account
	var addr solana.PublicKey

	if record {
		ledgerAcct, err := accounts.Unmarshal(buf)
		if err != nil {
			return fmt.Errorf("failed to decode account record: %w", err)
		}

		programID, err := common.Program()
		if err != nil {
			return err
		}

		acct, err = datastorage.DecodeLedgerAccount(programID, ledgerAcct.Key, ledgerAcct)
		if err != nil {
			return err
		}
		out = common.NewLedgerAccountOutput(ledgerAcct, acct, &datastorage.DefaultRent)
		addr = ledgerAcct.Key
	} else {
		acct, err = datastorage.DecodeAccount(buf)
		if err != nil {
			return err
		}
		out = common.NewAccountOutput(acct)
	}

	if address != "" {
		addr, err = common.ParsePubkey("address", address)
		if err != nil {
			return err
		}
		out.Address = addr.String()
	}

	if !addr.IsZero() {
		programID, err := common.Program()
		if err != nil {
			return err
		}
		valid := datastorage.VerifyAccountAddress(programID, addr, acct) == nil
		out.AddressValid = &valid
	}

	return common.WriteYAML(c.OutOrStdout(), out)
}
