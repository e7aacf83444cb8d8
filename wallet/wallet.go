package wallet

// Wallet holds at most one active account.
type Wallet interface {
	CreateAccount(passphrase string) ([]byte, *Account, error) // returns keystore json and the new account

	LoadAccount(keyjson []byte, passphrase string) (*Account, error)

	LoadAccountFromSeed(seedHex string) (*Account, error)

	LoadAccountFromMnemonic(mnemonic string) (*Account, error)

	LoadAccountFromMnemonicPath(mnemonic, path string) (*Account, error)

	ExportKeystore(passphrase string) ([]byte, error)

	Address() (string, error)

	Account() (*Account, error)

	SignPayload(encoded []byte) ([]byte, error)

	SignPayloadAs(address string, encoded []byte) ([]byte, error)

	Clear() string
}

var _ Wallet = (*Session)(nil)
