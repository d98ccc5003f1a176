package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-rns/go-rns/lib/announce"
	"github.com/go-rns/go-rns/lib/link"
	"github.com/go-rns/go-rns/lib/packet"
)

var packetCmd = &cobra.Command{
	Use:   "packet unpack <hex>",
	Short: "Unpack a raw packet",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "unpack" {
			return fmt.Errorf("unknown packet verb %q", args[0])
		}
		raw, err := hex.DecodeString(args[1])
		if err != nil {
			return err
		}
		p, err := packet.Unpack(raw)
		if err != nil {
			return err
		}
		hash, err := packet.HashRaw(raw)
		if err != nil {
			return err
		}
		fmt.Printf("header_type:      %d\n", p.Flags.HeaderType)
		fmt.Printf("context_flag:     %d\n", p.Flags.ContextFlag)
		fmt.Printf("transport_type:   %d\n", p.Flags.TransportType)
		fmt.Printf("destination_type: %d\n", p.Flags.DestinationType)
		fmt.Printf("packet_type:      %d\n", p.Flags.PacketType)
		fmt.Printf("hops:             %d\n", p.Hops)
		if p.TransportID != nil {
			fmt.Printf("transport_id:     %s\n", hex.EncodeToString(p.TransportID))
		}
		fmt.Printf("destination_hash: %s\n", hex.EncodeToString(p.DestinationHash))
		fmt.Printf("context:          0x%02x\n", p.Context)
		fmt.Printf("data_length:      %d\n", len(p.Data))
		fmt.Printf("packet_hash:      %s\n", hex.EncodeToString(hash))
		return nil
	},
}

var (
	announceDestination string
	announceRatchet     bool
)

var announceCmd = &cobra.Command{
	Use:   "announce verify <hex>",
	Short: "Verify an announce payload",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] != "verify" {
			return fmt.Errorf("unknown announce verb %q", args[0])
		}
		raw, err := hex.DecodeString(args[1])
		if err != nil {
			return err
		}
		destHash, err := hex.DecodeString(announceDestination)
		if err != nil {
			return err
		}
		a, err := announce.Unpack(raw, announceRatchet)
		if err != nil {
			return err
		}
		ok, err := a.Verify(destHash, true)
		if err != nil {
			return err
		}
		fmt.Printf("valid:       %v\n", ok)
		fmt.Printf("has_ratchet: %v\n", a.HasRatchet())
		fmt.Printf("app_data:    %d bytes\n", len(a.AppData))
		return nil
	},
}

var (
	signallingMTU  uint32
	signallingMode uint8
)

var signallingCmd = &cobra.Command{
	Use:   "signalling [encode|decode <hex>]",
	Short: "Encode or decode link signalling bytes",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "encode":
			b, err := link.EncodeSignalling(signallingMTU, signallingMode)
			if err != nil {
				return err
			}
			fmt.Printf("signalling: %s\n", hex.EncodeToString(b))
			return nil
		case "decode":
			if len(args) != 2 {
				return fmt.Errorf("decode requires a hex argument")
			}
			raw, err := hex.DecodeString(args[1])
			if err != nil {
				return err
			}
			mtu, mode, err := link.ParseSignalling(raw)
			if err != nil {
				return err
			}
			fmt.Printf("mtu:  %d\n", mtu)
			fmt.Printf("mode: %d\n", mode)
			return nil
		default:
			return fmt.Errorf("unknown signalling verb %q", args[0])
		}
	},
}

func init() {
	announceCmd.Flags().StringVar(&announceDestination, "destination", "", "claimed destination hash, hex")
	announceCmd.Flags().BoolVar(&announceRatchet, "ratchet", false, "payload carries a ratchet region (the packet's context flag)")
	signallingCmd.Flags().Uint32Var(&signallingMTU, "mtu", 500, "link MTU")
	signallingCmd.Flags().Uint8Var(&signallingMode, "mode", 0, "link mode")
}
