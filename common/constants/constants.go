package constants

const (
	SDKName = "cos-sdk-go"

	SeedLength       = 32
	SeedHexLength    = SeedLength * 2
	BIP39SeedLength  = 64
	PrivateKeyLength = 32
	SignatureLength  = 65
	AddressLength    = 20
	AddressHexLength = AddressLength*2 + 2

	// scrypt parameters of the web3 secret storage defaults
	StandardScryptN = 1 << 18
	StandardScryptP = 1
	LightScryptN    = 1 << 12
	LightScryptP    = 6

	MaxGasLimit = 1<<63 - 1

	DefaultHDPath = "m/44'/60'/0'/0/0"

	DefaultBlockTag = "pending"

	NoticeAccountLoaded  = "accountloaded"
	NoticeAccountCleared = "accountcleared"
	NoticeTrxSent        = "trxsent"

	RpcGetTransactionCount   = "eth_getTransactionCount"
	RpcGasPrice              = "eth_gasPrice"
	RpcEstimateGas           = "eth_estimateGas"
	RpcSendRawTransaction    = "eth_sendRawTransaction"
	RpcGetTransactionReceipt = "eth_getTransactionReceipt"
)
