package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/coschain/cobra"
	"github.com/coschain/cos-sdk-go/cmd/wallet-cli/commands/utils"
	"github.com/coschain/cos-sdk-go/sdk"
)

// Context keys shared by every command.
const (
	ContextSDK     = "sdk"
	ContextPReader = "preader"
)

// callTimeout bounds each node round trip started from the shell.
var callTimeout = 30 * time.Second

func sdkOf(cmd *cobra.Command) *sdk.SDK {
	return cmd.Context[ContextSDK].(*sdk.SDK)
}

func getPassphrase(cmd *cobra.Command) (string, error) {
	reader := cmd.Context[ContextPReader].(utils.PasswordReader)
	return utils.ReadPassphrase(reader, cmd.OutOrStdout(), "Enter passphrase > ")
}

func callContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), callTimeout)
}

func printf(cmd *cobra.Command, format string, a ...interface{}) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", a...)
}

func printErr(cmd *cobra.Command, err error) {
	printf(cmd, "error: %v", err)
}
