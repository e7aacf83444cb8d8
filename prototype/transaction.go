package prototype

import (
	"math/big"

	"github.com/coschain/cos-sdk-go/common/constants"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

type State uint8

const (
	StateEmpty State = iota
	StateBuilt
	StateEncoded
	StateSigned
	StateSerialized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilt:
		return "built"
	case StateEncoded:
		return "encoded"
	case StateSigned:
		return "signed"
	case StateSerialized:
		return "serialized"
	default:
		return "unknown"
	}
}

// Transaction holds validated legacy transaction fields.
type Transaction struct {
	Nonce    uint64
	GasPrice *big.Int
	GasLimit uint64
	To       ethcommon.Address
	Amount   *big.Int
	ChainID  *big.Int
}

// Signer produces a signature over an encoded transaction.
type Signer interface {
	SignPayload(encoded []byte) ([]byte, error)
}

// Builder drives one transaction through Built, Encoded, Signed and
// Serialized. A failed step leaves the state unchanged. A Builder is not safe
// for concurrent use.
type Builder struct {
	chainID *big.Int
	state   State
	trx     *Transaction
	encoded []byte
	signed  *SignedTransaction
}

// NewBuilder returns a builder for chainID, nil picks the default chain.
func NewBuilder(chainID *big.Int) *Builder {
	if chainID == nil {
		chainID = big.NewInt(constants.DefaultChainID)
	}
	return &Builder{chainID: new(big.Int).Set(chainID)}
}

func (b *Builder) State() State {
	return b.state
}

func (b *Builder) expect(op string, want State) error {
	if b.state != want {
		return &StateError{Op: op, State: b.state}
	}
	return nil
}

var (
	zero       = big.NewInt(0)
	one        = big.NewInt(1)
	maxGasUint = new(big.Int).SetUint64(constants.MaxGasLimit)
)

// Build validates caller supplied fields. nonce, gasPrice and gasLimit take
// decimal or 0x hex, amount is a decimal string in minor units.
func (b *Builder) Build(nonce, gasPrice, gasLimit, to, amount string) error {
	if err := b.expect("build", StateEmpty); err != nil {
		return err
	}
	if b.chainID.Sign() <= 0 {
		return &InvalidFieldError{Field: "chainId", Reason: sErrRange}
	}
	n, err := parseBounded("nonce", nonce, zero, maxUint64)
	if err != nil {
		return err
	}
	price, err := parseBounded("gasPrice", gasPrice, one, maxUint256)
	if err != nil {
		return err
	}
	limit, err := parseBounded("gasLimit", gasLimit, one, maxGasUint)
	if err != nil {
		return err
	}
	addr, err := ValidAddress(to)
	if err != nil {
		return err
	}
	value, err := parseAmount("amount", amount)
	if err != nil {
		return err
	}
	b.trx = &Transaction{
		Nonce:    n.Uint64(),
		GasPrice: price,
		GasLimit: limit.Uint64(),
		To:       addr,
		Amount:   value,
		ChainID:  new(big.Int).Set(b.chainID),
	}
	b.state = StateBuilt
	return nil
}

// Transaction returns a copy of the built fields, nil before Build.
func (b *Builder) Transaction() *Transaction {
	if b.trx == nil {
		return nil
	}
	t := *b.trx
	t.GasPrice = new(big.Int).Set(b.trx.GasPrice)
	t.Amount = new(big.Int).Set(b.trx.Amount)
	t.ChainID = new(big.Int).Set(b.trx.ChainID)
	return &t
}

// Encode produces the EIP-155 signing payload
// rlp([nonce, gasPrice, gasLimit, to, value, data, chainId, 0, 0]).
func (b *Builder) Encode() ([]byte, error) {
	if err := b.expect("encode", StateBuilt); err != nil {
		return nil, err
	}
	t := b.trx
	enc, err := rlp.EncodeToBytes([]interface{}{
		t.Nonce, t.GasPrice, t.GasLimit, t.To, t.Amount, []byte{}, t.ChainID, uint(0), uint(0),
	})
	if err != nil {
		return nil, errors.WithMessage(err, "rlp encode")
	}
	b.encoded = enc
	b.state = StateEncoded
	return append([]byte(nil), enc...), nil
}

// Sign asks signer for a signature over the encoded payload and merges it in.
func (b *Builder) Sign(signer Signer) error {
	if err := b.expect("sign", StateEncoded); err != nil {
		return err
	}
	sig, err := signer.SignPayload(b.encoded)
	if err != nil {
		return err
	}
	signed, err := newSignedTransaction(b.trx, sig)
	if err != nil {
		return err
	}
	b.signed = signed
	b.state = StateSigned
	return nil
}

// Serialize returns the 0x lowercase hex of the signed transaction. It can be
// called any number of times once signed.
func (b *Builder) Serialize() (string, error) {
	if b.state != StateSigned && b.state != StateSerialized {
		return "", &StateError{Op: "serialize", State: b.state}
	}
	b.state = StateSerialized
	return b.signed.Hex(), nil
}

// Signed returns the signed transaction, nil before Sign.
func (b *Builder) Signed() *SignedTransaction {
	return b.signed
}
