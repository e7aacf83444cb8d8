package prototype

import (
	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/coschain/cos-sdk-go/common/crypto"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

// SignedTransaction is a legacy transaction with its EIP-155 signature.
type SignedTransaction struct {
	tx  *types.Transaction
	raw []byte
}

// newSignedTransaction merges a [R || S || V] signature, V being the recovery
// id, as v = V + 35 + 2*chainId.
func newSignedTransaction(t *Transaction, sig []byte) (*SignedTransaction, error) {
	if len(sig) != constants.SignatureLength {
		return nil, errors.Wrapf(crypto.ErrSigning, "signature is %d bytes", len(sig))
	}
	if sig[64] > 1 {
		return nil, errors.Wrapf(crypto.ErrSigning, "recovery id %d", sig[64])
	}
	unsigned := types.NewTx(&types.LegacyTx{
		Nonce:    t.Nonce,
		GasPrice: t.GasPrice,
		Gas:      t.GasLimit,
		To:       &t.To,
		Value:    t.Amount,
	})
	tx, err := unsigned.WithSignature(types.NewEIP155Signer(t.ChainID), sig)
	if err != nil {
		return nil, errors.Wrap(crypto.ErrSigning, err.Error())
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, errors.WithMessage(err, "rlp encode signed transaction")
	}
	return &SignedTransaction{tx: tx, raw: raw}, nil
}

// Bytes returns the canonical signed encoding.
func (s *SignedTransaction) Bytes() []byte {
	return append([]byte(nil), s.raw...)
}

func (s *SignedTransaction) Hex() string {
	return hexutil.Encode(s.raw)
}

// Tx exposes the go-ethereum view of the transaction.
func (s *SignedTransaction) Tx() *types.Transaction {
	return s.tx
}
