package commands

import (
	"context"
	"time"

	"github.com/coschain/cobra"
	"github.com/coschain/cos-sdk-go/rpc"
)

var ReceiptCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "receipt",
		Short:   "query a transaction receipt",
		Example: "receipt 0x... [--wait 60s]",
		Args:    cobra.ExactArgs(1),
		Run:     receipt,
	}
	cmd.Flags().DurationP("wait", "w", 0, "poll until the receipt appears or the duration passes")
	return cmd
}

func receipt(cmd *cobra.Command, args []string) {
	s := sdkOf(cmd)
	wait, _ := cmd.Flags().GetDuration("wait")

	var (
		r   *rpc.Receipt
		err error
	)
	if wait > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), wait)
		defer cancel()
		r, err = s.WaitForReceipt(ctx, args[0], time.Second)
	} else {
		ctx, cancel := callContext()
		defer cancel()
		r, err = s.GetTransactionReceipt(ctx, args[0])
	}
	if err != nil {
		printErr(cmd, err)
		return
	}
	status := "failed"
	if r.Succeeded() {
		status = "success"
	}
	printf(cmd, "Transaction: %s", r.TransactionHash.Hex())
	if r.BlockNumber != nil {
		printf(cmd, "Block:       %s", r.BlockNumber.ToInt())
	}
	printf(cmd, "Gas Used:    %d", uint64(r.GasUsed))
	printf(cmd, "Status:      %s", status)
}
