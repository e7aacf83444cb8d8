package commands

import (
	"github.com/coschain/cobra"
	"github.com/coschain/cos-sdk-go/cmd/wallet-cli/commands/utils"
)

var AddressCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "show the active account",
		Run:   address,
	}
	return cmd
}

var ExportCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export",
		Short:   "save the active account to a keystore file",
		Example: "export ./keys/backup.json",
		Args:    cobra.ExactArgs(1),
		Run:     export,
	}
	return cmd
}

var ClearCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "wipe the active account from memory",
		Run:   clearAccount,
	}
	return cmd
}

func address(cmd *cobra.Command, args []string) {
	acc, err := sdkOf(cmd).Account()
	if err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "Address:    %s", acc.Address)
	printf(cmd, "Public Key: %s", acc.PublicKey)
	printf(cmd, "Source:     %s", acc.Provenance)
}

func export(cmd *cobra.Command, args []string) {
	s := sdkOf(cmd)
	if _, err := s.Address(); err != nil {
		printErr(cmd, err)
		return
	}
	passphrase, err := getPassphrase(cmd)
	if err != nil {
		printErr(cmd, err)
		return
	}
	keyjson, err := s.ExportKeystore(passphrase)
	if err != nil {
		printErr(cmd, err)
		return
	}
	if err := utils.WriteKeystore(args[0], keyjson); err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "keystore saved to %s", args[0])
}

func clearAccount(cmd *cobra.Command, args []string) {
	sdkOf(cmd).ClearAccount()
	printf(cmd, "account cleared")
}
