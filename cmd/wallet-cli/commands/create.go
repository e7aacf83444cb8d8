package commands

import (
	"github.com/coschain/cobra"
	"github.com/coschain/cos-sdk-go/cmd/wallet-cli/commands/utils"
)

var CreateCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Short:   "create a new account and save its keystore",
		Example: "create ./keys/alice.json",
		Args:    cobra.ExactArgs(1),
		Run:     create,
	}
	return cmd
}

func create(cmd *cobra.Command, args []string) {
	s := sdkOf(cmd)
	passphrase, err := getPassphrase(cmd)
	if err != nil {
		printErr(cmd, err)
		return
	}
	keyjson, acc, err := s.CreateAccount(passphrase)
	if err != nil {
		printErr(cmd, err)
		return
	}
	if err := utils.WriteKeystore(args[0], keyjson); err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "created account %s, keystore saved to %s", acc.Address, args[0])
}
