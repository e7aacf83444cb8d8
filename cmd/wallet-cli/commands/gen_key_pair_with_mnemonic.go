package commands

import (
	"github.com/coschain/cobra"
	"github.com/coschain/cos-sdk-go/wallet"
)

var NewMnemonicCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newmnemonic",
		Short: "generate a new mnemonic and load its first account",
		Run:   genMnemonic,
	}
	return cmd
}

func genMnemonic(cmd *cobra.Command, args []string) {
	mnemonic, err := wallet.NewMnemonic()
	if err != nil {
		printErr(cmd, err)
		return
	}
	acc, err := sdkOf(cmd).LoadAccountFromMnemonicPath(mnemonic, "")
	if err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "Mnemonic: %s", mnemonic)
	printf(cmd, "Address:  %s", acc.Address)
}
