// +build testnet

package constants

const (
	DefaultChainID  int64 = 11155111
	DefaultEndpoint       = "http://localhost:8545"
	ClientName            = "cos-sdk-go-testnet"
)
