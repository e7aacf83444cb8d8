// +build devnet

package constants

const (
	DefaultChainID  int64 = 1337
	DefaultEndpoint       = "http://127.0.0.1:8545"
	ClientName            = "cos-sdk-go-devnet"
)
