package sdk

import (
	"github.com/coschain/cos-sdk-go/common/crypto"
	"github.com/coschain/cos-sdk-go/prototype"
	"github.com/coschain/cos-sdk-go/rpc"
	"github.com/coschain/cos-sdk-go/wallet"
)

// Failure kinds surfaced by the SDK. Match them with errors.Is and errors.As.
var (
	ErrNotInitialized          = crypto.ErrNotInitialized
	ErrInvalidSeed             = crypto.ErrInvalidSeed
	ErrDecryption              = crypto.ErrDecryption
	ErrSigning                 = crypto.ErrSigning
	ErrKeyGeneration           = crypto.ErrKeyGeneration
	ErrUnsupported             = crypto.ErrUnsupported
	ErrInvalidMnemonic         = wallet.ErrInvalidMnemonic
	ErrNoAccountLoaded         = wallet.ErrNoAccountLoaded
	ErrAccountChanged          = wallet.ErrAccountChanged
	ErrInvalidTransactionField = prototype.ErrInvalidTransactionField
	ErrInvalidState            = prototype.ErrInvalidState
	ErrReceiptNotFound         = rpc.ErrReceiptNotFound
)

type (
	InitializationError = crypto.InitializationError
	InvalidFieldError   = prototype.InvalidFieldError
	StateError          = prototype.StateError
	TransportError      = rpc.TransportError
	RPCError            = rpc.RPCError
	ProtocolError       = rpc.ProtocolError
)
