package commands

import (
	"github.com/coschain/cobra"
	"github.com/coschain/cos-sdk-go/cmd/wallet-cli/commands/utils"
)

var LoadCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "load",
		Short:   "load an account from a keystore file",
		Example: "load ./keys/alice.json",
		Args:    cobra.ExactArgs(1),
		Run:     load,
	}
	return cmd
}

func load(cmd *cobra.Command, args []string) {
	s := sdkOf(cmd)
	keyjson, err := utils.ReadKeystore(args[0])
	if err != nil {
		printErr(cmd, err)
		return
	}
	passphrase, err := getPassphrase(cmd)
	if err != nil {
		printErr(cmd, err)
		return
	}
	acc, err := s.LoadAccount(keyjson, passphrase)
	if err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "load account %s success", acc.Address)
}
