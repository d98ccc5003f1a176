package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-rns/go-rns/lib/config"
	"github.com/go-rns/go-rns/lib/ifac"
)

var ifacCmd = &cobra.Command{
	Use:   "ifac [tag <packet-hex>|verify <packet-hex> <tag-hex>]",
	Short: "Compute or verify interface access code tags",
	Long: "ifac derives the access code key from the configured network name\n" +
		"and passphrase (ifac.netname, ifac.passphrase) and tags packets with\n" +
		"the configured tag length (ifac.size).",
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewCoreConfigFromViper()
		secret := cfg.OriginSecret()
		if secret == nil {
			return fmt.Errorf("IFAC is not configured; set ifac.netname or ifac.passphrase")
		}
		key, err := ifac.DeriveKey(secret)
		if err != nil {
			return err
		}

		raw, err := hex.DecodeString(args[1])
		if err != nil {
			return err
		}

		switch args[0] {
		case "tag":
			tag, err := ifac.Compute(key, raw, cfg.IFACSize)
			if err != nil {
				return err
			}
			fmt.Printf("tag: %s\n", hex.EncodeToString(tag))
			return nil
		case "verify":
			if len(args) != 3 {
				return fmt.Errorf("verify requires a tag argument")
			}
			tag, err := hex.DecodeString(args[2])
			if err != nil {
				return err
			}
			fmt.Printf("valid: %v\n", ifac.Verify(key, raw, tag))
			return nil
		default:
			return fmt.Errorf("unknown ifac verb %q", args[0])
		}
	},
}
