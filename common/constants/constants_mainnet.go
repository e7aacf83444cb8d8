// +build !testnet,!devnet

package constants

const (
	DefaultChainID  int64 = 1
	DefaultEndpoint       = "http://localhost:8545"
	ClientName            = "cos-sdk-go"
)
