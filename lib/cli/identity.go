package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-rns/go-rns/lib/destination"
	"github.com/go-rns/go-rns/lib/identity"
)

var identityFile string

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Generate and inspect identities",
}

var identityGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := identity.New()
		if err != nil {
			return err
		}
		if identityFile != "" {
			if err := id.SaveToFile(identityFile); err != nil {
				return err
			}
		}
		fmt.Printf("identity_hash: %s\n", id.Hex())
		fmt.Printf("public_key:    %s\n", hex.EncodeToString(id.PublicKey()))
		return nil
	},
}

var identityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the identity stored in a key file",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := identity.LoadFromFile(identityFile)
		if err != nil {
			return err
		}
		fmt.Printf("identity_hash: %s\n", id.Hex())
		fmt.Printf("public_key:    %s\n", hex.EncodeToString(id.PublicKey()))
		return nil
	},
}

var (
	destAppName      string
	destAspects      []string
	destIdentityHash string
)

var destinationCmd = &cobra.Command{
	Use:   "destination",
	Short: "Derive a destination hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		identityHash, err := hex.DecodeString(destIdentityHash)
		if err != nil {
			return err
		}
		destHash, err := destination.Hash(identityHash, destAppName, destAspects...)
		if err != nil {
			return err
		}
		fmt.Printf("destination_hash: %s\n", hex.EncodeToString(destHash))
		return nil
	},
}

func init() {
	identityCmd.AddCommand(identityGenerateCmd)
	identityCmd.AddCommand(identityShowCmd)
	identityCmd.PersistentFlags().StringVar(&identityFile, "file", "", "identity key file")

	destinationCmd.Flags().StringVar(&destAppName, "app", "", "application name")
	destinationCmd.Flags().StringSliceVar(&destAspects, "aspect", nil, "destination aspects")
	destinationCmd.Flags().StringVar(&destIdentityHash, "identity-hash", "", "identity hash, hex")
}
