package commands

import (
	"github.com/coschain/cobra"
)

var TransferCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transfer",
		Short:   "transfer to another address",
		Long:    "transfer an amount in minor units from the active account, nonce and gas are taken from the node",
		Example: "transfer 0x3535353535353535353535353535353535353535 1000000000000000000",
		Args:    cobra.ExactArgs(2),
		Run:     transfer,
	}
	return cmd
}

func transfer(cmd *cobra.Command, args []string) {
	ctx, cancel := callContext()
	defer cancel()
	hash, err := sdkOf(cmd).Transfer(ctx, args[0], args[1])
	if err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "Result: %s", hash)
}
