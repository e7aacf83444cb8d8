package main

import (
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/coschain/cobra"
	"github.com/coschain/cos-sdk-go/cmd/wallet-cli/commands"
	"github.com/coschain/cos-sdk-go/cmd/wallet-cli/commands/utils"
	"github.com/coschain/cos-sdk-go/common"
	"github.com/coschain/cos-sdk-go/config"
	"github.com/coschain/cos-sdk-go/sdk"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "wallet-cli",
	Short: "wallet-cli holds one account and talks to a node",
}

func pcFromCommands(parent readline.PrefixCompleterInterface, c *cobra.Command) {
	pc := readline.PcItem(c.Use)
	parent.SetChildren(append(parent.GetChildren(), pc))
	for _, child := range c.Commands() {
		pcFromCommands(pc, child)
	}
}

func inheritContext(c *cobra.Command) {
	for _, child := range c.Commands() {
		child.Context = c.Context
		inheritContext(child)
	}
}

func runShell() {
	completer := readline.NewPrefixCompleter()
	for _, child := range rootCmd.Commands() {
		pcFromCommands(completer, child)
	}
	shell, err := readline.NewEx(&readline.Config{
		Prompt:       "> ",
		AutoComplete: completer,
		EOFPrompt:    "exit",
	})
	if err != nil {
		panic(err)
	}
	defer shell.Close()

shell_loop:
	for {
		l, err := shell.Readline()
		if err != nil {
			break shell_loop
		}
		fields := strings.Fields(l)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			break shell_loop
		}
		cmd, flags, err := rootCmd.Find(fields)
		if err != nil || cmd == rootCmd {
			shell.Terminal.Write([]byte("unknown command " + fields[0] + "\n"))
			continue
		}
		if err := cmd.ParseFlags(flags); err != nil {
			shell.Terminal.Write([]byte(err.Error() + "\n"))
			continue
		}
		args := cmd.Flags().Args()
		if cmd.Args != nil {
			if err := cmd.Args(cmd, args); err != nil {
				shell.Terminal.Write([]byte(err.Error() + "\n"))
				continue
			}
		}
		cmd.Run(cmd, args)
		// flags keep their values between runs otherwise
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
		})
	}
}

func addCommands() {
	rootCmd.AddCommand(commands.CreateCmd())
	rootCmd.AddCommand(commands.LoadCmd())
	rootCmd.AddCommand(commands.SeedCmd())
	rootCmd.AddCommand(commands.MnemonicCmd())
	rootCmd.AddCommand(commands.HDCmd())
	rootCmd.AddCommand(commands.NewMnemonicCmd())
	rootCmd.AddCommand(commands.AddressCmd())
	rootCmd.AddCommand(commands.ExportCmd())
	rootCmd.AddCommand(commands.ClearCmd())
	rootCmd.AddCommand(commands.NonceCmd())
	rootCmd.AddCommand(commands.GasPriceCmd())
	rootCmd.AddCommand(commands.TransferCmd())
	rootCmd.AddCommand(commands.ReceiptCmd())
}

func init() {
	addCommands()
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		runShell()
	}
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("COSSDK_DATADIR"))
	if err != nil {
		common.Fatalf("load config: %v", err)
	}
	s, err := sdk.New(cfg)
	if err != nil {
		common.Fatalf("start sdk: %v", err)
	}
	defer s.Close()

	rootCmd.SetContext(commands.ContextSDK, s)
	rootCmd.SetContext(commands.ContextPReader, utils.MyPasswordReader{})
	inheritContext(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		s.Close()
		os.Exit(1)
	}
}
