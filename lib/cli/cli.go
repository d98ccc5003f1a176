// Package cli exposes core operations as a verb-style command surface
package cli

import (
	"github.com/spf13/cobra"

	"github.com/go-rns/go-rns/lib/config"
)

var rootCmd = &cobra.Command{
	Use:   "go-rns",
	Short: "Reticulum cryptographic core operations",
	Long: "go-rns exposes the identity, packet, announce, link and resource\n" +
		"codecs as single-shot verbs. Every verb takes explicit inputs and\n" +
		"prints a structured result or fails with a typed error; nothing\n" +
		"mutates global state.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(config.InitConfig)
	rootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default $HOME/.go-rns/config.yaml)")

	rootCmd.AddCommand(identityCmd)
	rootCmd.AddCommand(destinationCmd)
	rootCmd.AddCommand(packetCmd)
	rootCmd.AddCommand(announceCmd)
	rootCmd.AddCommand(signallingCmd)
	rootCmd.AddCommand(ifacCmd)
	rootCmd.AddCommand(ratchetCmd)
	rootCmd.AddCommand(tokenCmd)
}
