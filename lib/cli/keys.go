package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-rns/go-rns/lib/common/data"
	"github.com/go-rns/go-rns/lib/config"
	"github.com/go-rns/go-rns/lib/ratchet"
)

var ratchetCmd = &cobra.Command{
	Use:   "ratchet generate",
	Short: "Generate a ratchet key for the next announce",
	Long: "ratchet generate draws a fresh ratchet key through a store built\n" +
		"from the configured retention settings (ratchet.expiry,\n" +
		"ratchet.max_retained) and prints the key pair and its id.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "generate" {
			return fmt.Errorf("unknown ratchet verb %q", args[0])
		}
		cfg := config.NewCoreConfigFromViper()
		store := ratchet.NewStore(cfg.RatchetExpiry, cfg.RatchetMaxRetained)

		pub, err := store.Current()
		if err != nil {
			return err
		}
		id, err := ratchet.ID(pub)
		if err != nil {
			return err
		}
		priv, ok := store.Get(id)
		if !ok {
			return fmt.Errorf("generated ratchet missing from store")
		}

		fmt.Printf("ratchet_id: %s\n", hex.EncodeToString(id))
		fmt.Printf("public:     %s\n", hex.EncodeToString(pub))
		fmt.Printf("private:    %s\n", hex.EncodeToString(priv))
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token keygen",
	Short: "Generate a token key of the configured mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "keygen" {
			return fmt.Errorf("unknown token verb %q", args[0])
		}
		cfg := config.NewCoreConfigFromViper()
		key, err := data.RandomBytes(cfg.TokenKeySize())
		if err != nil {
			return err
		}
		fmt.Printf("mode: %s\n", cfg.TokenMode)
		fmt.Printf("key:  %s\n", hex.EncodeToString(key))
		return nil
	},
}
