package commands

import (
	"github.com/coschain/cobra"
)

var NonceCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "nonce",
		Short:   "query the pending nonce of the active account or of an address",
		Example: "nonce [0x...]",
		Args:    cobra.MaximumNArgs(1),
		Run:     nonce,
	}
	return cmd
}

var GasPriceCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gasprice",
		Short: "query the node's gas price",
		Run:   gasPrice,
	}
	return cmd
}

func nonce(cmd *cobra.Command, args []string) {
	s := sdkOf(cmd)
	ctx, cancel := callContext()
	defer cancel()

	var (
		n   uint64
		err error
	)
	if len(args) == 1 {
		n, err = s.GetTransactionCount(ctx, args[0])
	} else {
		n, err = s.Nonce(ctx)
	}
	if err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "Nonce: %d", n)
}

func gasPrice(cmd *cobra.Command, args []string) {
	ctx, cancel := callContext()
	defer cancel()
	p, err := sdkOf(cmd).GasPrice(ctx)
	if err != nil {
		printErr(cmd, err)
		return
	}
	printf(cmd, "Gas Price: %s", p)
}
