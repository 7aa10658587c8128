package fetch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/accounts"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"go.firedancer.io/datastorage/pkg/rpcclient"
	dssolana "go.firedancer.io/datastorage/pkg/solana"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "fetch [address...]",
		Short: "Fetch and decode data storage accounts",
		Long: "Fetch and decode data storage accounts by address, or by\n" +
			"--authority and one or more --label values.",
		RunE: run,
	}

	authority   string
	labels      []string
	saveDir     string
	verify      bool
	parallelism int
)

func init() {
	Cmd.Flags().StringVarP(&authority, "authority", "a", "", "Authority used to derive addresses from --label")
	Cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Account labels to derive addresses for")
	Cmd.Flags().StringVar(&saveDir, "save", "", "Write raw account records to this directory")
	Cmd.Flags().BoolVar(&verify, "verify", false, "Check each address against the stored authority, label and bump")
	Cmd.Flags().IntVar(&parallelism, "parallelism", 4, "Maximum concurrent RPC batch requests")
}

func addresses(programID solana.PublicKey, args []string) ([]solana.PublicKey, error) {
	var out []solana.PublicKey
	for _, arg := range args {
		pk, err := solana.PublicKeyFromBase58(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid address %s: %w", arg, err)
		}
		out = append(out, pk)
	}

	if len(labels) > 0 {
		authorityKey, err := common.ParsePubkey("authority", authority)
		if err != nil {
			return nil, err
		}
		for _, label := range labels {
			addr, _, err := datastorage.DeriveAddress(dssolana.DefaultDeriver, programID, authorityKey, label)
			if err != nil {
				return nil, err
			}
			out = append(out, addr)
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no accounts given")
	}
	return out, nil
}

// fetchAll fetches keys in batches, drawing a progress bar on terminals.
func fetchAll(c *cobra.Command, client *rpcclient.RpcClient, keys []solana.PublicKey) ([]*accounts.Account, error) {
	if len(keys) <= rpcclient.MaxAccountsPerRequest || !isatty.IsTerminal(os.Stderr.Fd()) {
		return client.GetAccounts(c.Context(), keys)
	}

	progress := mpb.NewWithContext(c.Context(), mpb.WithOutput(c.ErrOrStderr()))
	bar := progress.AddBar(int64(len(keys)),
		mpb.PrependDecorators(decor.Name("accounts ")),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)
	client.OnProgress(func(n int) { bar.IncrBy(n) })

	accts, err := client.GetAccounts(c.Context(), keys)
	if err != nil {
		bar.Abort(false)
	}
	progress.Wait()
	return accts, err
}

func save(ledgerAcct *accounts.Account) error {
	path := filepath.Join(saveDir, ledgerAcct.Key.String()+".bin")
	if err := os.WriteFile(path, ledgerAcct.Marshal(), 0o644); err != nil {
		return err
	}
	klog.V(2).Infof("saved %s", path)
	return nil
}

func run(c *cobra.Command, args []string) error {
	client, cfg, err := common.Client()
	if err != nil {
		return err
	}
	client.SetParallelism(parallelism)

	programID, err := cfg.Program()
	if err != nil {
		return err
	}

	keys, err := addresses(programID, args)
	if err != nil {
		return err
	}

	if saveDir != "" {
		if err := os.MkdirAll(saveDir, 0o755); err != nil {
			return err
		}
	}

	var ledgerAccts []*accounts.Account
	if len(keys) == 1 {
		acct, err := client.GetAccount(c.Context(), keys[0])
		if err != nil {
			return err
		}
		ledgerAccts = []*accounts.Account{acct}
	} else {
		ledgerAccts, err = fetchAll(c, client, keys)
		if err != nil {
			return err
		}
	}

	rent := common.Rent(c.Context(), client)

	var outputs []interface{}
	var failed int
	for i, ledgerAcct := range ledgerAccts {
		acct, err := datastorage.DecodeLedgerAccount(programID, keys[i], ledgerAcct)
		if errors.Is(err, datastorage.ErrAccountNotFound) {
			klog.Warningf("account %s does not exist", keys[i])
			failed++
			continue
		} else if err != nil {
			klog.Errorf("%s", err)
			failed++
			continue
		}

		out := common.NewLedgerAccountOutput(ledgerAcct, acct, rent)
		if verify {
			valid := datastorage.VerifyAccountAddress(programID, keys[i], acct) == nil
			out.AddressValid = &valid
		}
		outputs = append(outputs, out)

		if saveDir != "" {
			if err := save(ledgerAcct); err != nil {
				return err
			}
		}
	}

	if err := common.WriteYAML(c.OutOrStdout(), outputs...); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d accounts could not be decoded", failed, len(keys))
	}
	return nil
}
