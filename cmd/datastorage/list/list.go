package list

import (
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/accounts"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "list",
		Short: "List the data storage accounts of an authority",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	authority string
)

func init() {
	Cmd.Flags().StringVarP(&authority, "authority", "a", "", "Authority public key (\"system\" for immutable accounts)")
}

func run(c *cobra.Command, _ []string) error {
	client, cfg, err := common.Client()
	if err != nil {
		return err
	}

	programID, err := cfg.Program()
	if err != nil {
		return err
	}

	authorityKey, err := common.ParsePubkey("authority", authority)
	if err != nil {
		return err
	}

	ledgerAccts, err := client.GetAccountsByAuthority(c.Context(), programID, authorityKey)
	if err != nil {
		return err
	}

	rent := common.Rent(c.Context(), client)

	outputs := lo.FilterMap(ledgerAccts, func(ledgerAcct *accounts.Account, _ int) (*common.AccountOutput, bool) {
		acct, err := datastorage.DecodeLedgerAccount(programID, ledgerAcct.Key, ledgerAcct)
		if err != nil {
			klog.Warningf("skipping %s: %s", ledgerAcct.Key, err)
			return nil, false
		}
		return common.NewLedgerAccountOutput(ledgerAcct, acct, rent), true
	})

	sort.Slice(outputs, func(i, j int) bool {
		return outputs[i].Label < outputs[j].Label
	})

	klog.V(2).Infof("found %d accounts for %s", len(outputs), authorityKey)
	return common.WriteYAML(c.OutOrStdout(), lo.ToAnySlice(outputs)...)
}
