package derive

import (
	"encoding/hex"

	"github.com/spf13/cobra"
	"go.firedancer.io/datastorage/cmd/datastorage/common"
	"go.firedancer.io/datastorage/pkg/datastorage"
	dssolana "go.firedancer.io/datastorage/pkg/solana"
	"k8s.io/klog/v2"
)

var (
	Cmd = cobra.Command{
		Use:   "derive",
		Short: "Derive a data storage account address",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	authority string
	label     string
	offCurve  bool
)

func init() {
	Cmd.Flags().StringVarP(&authority, "authority", "a", "", "Authority public key (\"system\" for an immutable account)")
	Cmd.Flags().StringVarP(&label, "label", "l", "", "Account label, up to 30 bytes of UTF-8")
	Cmd.Flags().BoolVar(&offCurve, "off-curve", false, "Use the built-in bump search instead of solana-go's")
}

type output struct {
	Address   string   `yaml:"address"`
	Bump      uint8    `yaml:"bump"`
	ProgramID string   `yaml:"program_id"`
	Seeds     []string `yaml:"seeds_hex"`
}

func run(c *cobra.Command, _ []string) error {
	programID, err := common.Program()
	if err != nil {
		return err
	}

	authorityKey, err := common.ParsePubkey("authority", authority)
	if err != nil {
		return err
	}

	var deriver dssolana.Deriver = dssolana.DefaultDeriver
	if offCurve {
		deriver = dssolana.OffCurveDeriver{}
	}

	addr, bump, err := datastorage.DeriveAddress(deriver, programID, authorityKey, label)
	if err != nil {
		return err
	}
	klog.V(2).Infof("derived %s with bump %d", addr, bump)

	encodedLabel, err := datastorage.EncodeLabel(label)
	if err != nil {
		return err
	}

	out := output{Address: addr.String(), Bump: bump, ProgramID: programID.String()}
	for _, seed := range datastorage.Seeds(authorityKey, encodedLabel) {
		out.Seeds = append(out.Seeds, hex.EncodeToString(seed))
	}

	return common.WriteYAML(c.OutOrStdout(), out)
}
