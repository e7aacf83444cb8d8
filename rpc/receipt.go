package rpc

import (
	"encoding/json"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	ReceiptStatusFailed     = 0
	ReceiptStatusSuccessful = 1
)

// Receipt is the subset of eth_getTransactionReceipt the SDK reads.
// Logs are kept undecoded.
type Receipt struct {
	TransactionHash   ethcommon.Hash     `json:"transactionHash"`
	TransactionIndex  hexutil.Uint64     `json:"transactionIndex"`
	BlockHash         ethcommon.Hash     `json:"blockHash"`
	BlockNumber       *hexutil.Big       `json:"blockNumber"`
	From              ethcommon.Address  `json:"from"`
	To                *ethcommon.Address `json:"to"`
	GasUsed           hexutil.Uint64     `json:"gasUsed"`
	CumulativeGasUsed hexutil.Uint64     `json:"cumulativeGasUsed"`
	EffectiveGasPrice *hexutil.Big       `json:"effectiveGasPrice,omitempty"`
	ContractAddress   *ethcommon.Address `json:"contractAddress"`
	Status            hexutil.Uint64     `json:"status"`
	Logs              json.RawMessage    `json:"logs"`
}

func (r *Receipt) Succeeded() bool {
	return r.Status == ReceiptStatusSuccessful
}
