package commands

import (
	"strings"

	"github.com/coschain/cobra"
	"github.com/coschain/cos-sdk-go/wallet"
)

var SeedCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "seed",
		Short:   "load an account from a 32 byte hex seed",
		Example: "seed 0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
		Args:    cobra.ExactArgs(1),
		Run:     importSeed,
	}
	return cmd
}

var MnemonicCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mnemonic",
		Short:   "load an account from a BIP39 mnemonic",
		Example: "mnemonic abandon abandon ... about",
		Args:    cobra.MinimumNArgs(1),
		Run:     importMnemonic,
	}
	return cmd
}

var HDCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hd",
		Short:   "load an account from a BIP39 mnemonic along a derivation path",
		Example: "hd m/44'/60'/0'/0/0 abandon abandon ... about",
		Args:    cobra.MinimumNArgs(2),
		Run:     importHD,
	}
	return cmd
}

func printLoaded(cmd *cobra.Command, acc *wallet.Account, err error) {
	if err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "load account %s success (%s)", acc.Address, acc.Provenance)
}

func importSeed(cmd *cobra.Command, args []string) {
	acc, err := sdkOf(cmd).LoadAccountFromSeed(args[0])
	printLoaded(cmd, acc, err)
}

func importMnemonic(cmd *cobra.Command, args []string) {
	acc, err := sdkOf(cmd).LoadAccountFromMnemonic(strings.Join(args, " "))
	printLoaded(cmd, acc, err)
}

func importHD(cmd *cobra.Command, args []string) {
	acc, err := sdkOf(cmd).LoadAccountFromMnemonicPath(strings.Join(args[1:], " "), args[0])
	printLoaded(cmd, acc, err)
}
