package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/build"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/cmd/datastorage/decode"
	"go.firedancer.io/datastorage/cmd/datastorage/derive"
	"go.firedancer.io/datastorage/cmd/datastorage/events"
	"go.firedancer.io/datastorage/cmd/datastorage/fetch"
	"go.firedancer.io/datastorage/cmd/datastorage/inspect"
	"go.firedancer.io/datastorage/cmd/datastorage/list"
	"k8s.io/klog/v2"

	// Load in instruction pretty-printing
	_ "github.com/gagliardetto/solana-go/programs/system"
)

var cmd = cobra.Command{
	Use:   "datastorage",
	Short: "Client for the data storage program",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		common.ServeMetrics()
	},
}

func init() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	flags := cmd.PersistentFlags()
	flags.StringVar(&common.ConfigPath, "config", "", "Path to YAML config file")
	flags.StringVar(&common.RPC, "rpc", "", "RPC endpoint (overrides config)")
	flags.StringVar(&common.ProgramID, "program-id", "", "Data storage program ID (overrides config)")
	flags.StringVar(&common.Commitment, "commitment", "", "processed, confirmed or finalized (overrides config)")
	flags.StringVar(&common.MetricsAddr, "metrics-addr", "", "Serve prometheus metrics on this address")

	cmd.AddCommand(
		&build.Cmd,
		&decode.Cmd,
		&derive.Cmd,
		&events.Cmd,
		&fetch.Cmd,
		&inspect.Cmd,
		&list.Cmd,
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	cobra.CheckErr(cmd.ExecuteContext(ctx))
}
