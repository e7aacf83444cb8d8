package wallet

type Provenance uint8

const (
	Created Provenance = iota + 1
	FromSeed
	FromMnemonic
	FromMnemonicPath
	FromKeystore
)

func (p Provenance) String() string {
	switch p {
	case Created:
		return "created"
	case FromSeed:
		return "seed"
	case FromMnemonic:
		return "mnemonic"
	case FromMnemonicPath:
		return "mnemonic-path"
	case FromKeystore:
		return "keystore"
	default:
		return "unknown"
	}
}

// Account is the public half of the active account. The private key never
// leaves the Session.
type Account struct {
	Address    string
	PublicKey  string
	Provenance Provenance
}
