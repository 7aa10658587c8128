package events

import (
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/datastorage"
	"go.firedancer.io/datastorage/pkg/rpcclient"
)

var Cmd = cobra.Command{
	Use:   "events <signature>",
	Short: "Show the data storage events of a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  run,
}

type eventOutput struct {
	Event      string  `yaml:"event"`
	Account    string  `yaml:"account"`
	Authority  string  `yaml:"authority"`
	Label      *string `yaml:"label,omitempty"`
	OldDataLen *uint64 `yaml:"old_data_len,omitempty"`
	NewDataLen *uint64 `yaml:"new_data_len,omitempty"`
}

type output struct {
	Signature string        `yaml:"signature"`
	Error     string        `yaml:"error,omitempty"`
	Events    []eventOutput `yaml:"events"`
}

func describe(event datastorage.Event) eventOutput {
	out := eventOutput{Event: event.Name()}
	switch e := event.(type) {
	case *datastorage.AccountCreatedEvent:
		label := e.LabelString()
		out.Account, out.Authority, out.Label = e.Account.String(), e.Authority.String(), &label
	case *datastorage.AccountEditedEvent:
		out.Account, out.Authority = e.Account.String(), e.Authority.String()
		out.OldDataLen, out.NewDataLen = &e.OldDataLen, &e.NewDataLen
	case *datastorage.AccountClosedEvent:
		out.Account, out.Authority = e.Account.String(), e.Authority.String()
	}
	return out
}

func run(c *cobra.Command, args []string) error {
	sig, err := solana.SignatureFromBase58(args[0])
	if err != nil {
		return err
	}

	client, _, err := common.Client()
	if err != nil {
		return err
	}

	meta, err := client.GetTransactionMeta(c.Context(), sig)
	if err != nil {
		return err
	}

	out := output{Signature: sig.String(), Events: []eventOutput{}}
	if meta == nil {
		return common.WriteYAML(c.OutOrStdout(), out)
	}

	if txErr := rpcclient.TransactionError(meta); txErr != nil {
		out.Error = txErr.Error()
	}

	parsed, err := datastorage.ParseEvents(meta.LogMessages)
	if err != nil {
		return err
	}
	for _, event := range parsed {
		out.Events = append(out.Events, describe(event))
	}

	return common.WriteYAML(c.OutOrStdout(), out)
}
