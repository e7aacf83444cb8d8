package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/coschain/cos-sdk-go/config"
	"github.com/coschain/cos-sdk-go/mylog"
	"github.com/coschain/cos-sdk-go/wallet"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	zeroSeedHex     = "0000000000000000000000000000000000000000000000000000000000000000"
	zeroSeedAddress = "0xeb317b9f2e0891d66c061ddc3f5ee7ed42d70a44"
	recipient       = "0x3535353535353535353535353535353535353535"
	testMnemonic    = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeNode answers by method name. A handler returns the raw result json, or
// an error envelope when it returns a non-empty errJSON.
type fakeNode struct {
	mu       sync.Mutex
	calls    map[string]int
	params   map[string][]json.RawMessage
	handlers map[string]func(call int) (result, errJSON string)
	srv      *httptest.Server
}

func newFakeNode(t *testing.T) *fakeNode {
	n := &fakeNode{
		calls:  map[string]int{},
		params: map[string][]json.RawMessage{},
		handlers: map[string]func(int) (string, string){
			constants.RpcGetTransactionCount: func(int) (string, string) { return `"0x9"`, "" },
			constants.RpcGasPrice:            func(int) (string, string) { return `"0x4a817c800"`, "" },
			constants.RpcEstimateGas:         func(int) (string, string) { return `"0x5208"`, "" },
			constants.RpcSendRawTransaction: func(int) (string, string) {
				return `"0x33469b22e9f636356c4160a87eb19df52b7412e8eac32a4a55ffe88ea8350788"`, ""
			},
		},
	}
	n.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		n.mu.Lock()
		call := n.calls[req.Method]
		n.calls[req.Method]++
		n.params[req.Method] = req.Params
		h := n.handlers[req.Method]
		n.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if h == nil {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":{"code":-32601,"message":"method not found"}}`, req.ID)
			return
		}
		res, errJSON := h(call)
		if errJSON != "" {
			fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"error":%s}`, req.ID, errJSON)
			return
		}
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, res)
	}))
	t.Cleanup(n.srv.Close)
	return n
}

func (n *fakeNode) handle(method string, h func(call int) (string, string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = h
}

func (n *fakeNode) count(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *fakeNode) lastParams(method string) []json.RawMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.params[method]
}

func newTestSDK(t *testing.T, n *fakeNode) *SDK {
	cfg := config.DefaultConfig()
	cfg.Endpoint = n.srv.URL
	cfg.ScryptN = constants.LightScryptN
	cfg.ScryptP = constants.LightScryptP
	cfg.LogDir = ""
	s, err := New(cfg, WithLogger(mylog.Discard()))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ChainID = 0
	_, err := New(cfg, WithLogger(mylog.Discard()))
	assert.Error(t, err)

	cfg = config.DefaultConfig()
	cfg.ModulePath = "/nonexistent/module.so"
	_, err = New(cfg, WithLogger(mylog.Discard()))
	var ierr *InitializationError
	assert.True(t, errors.As(err, &ierr))
}

func TestSDK_AccountEvents(t *testing.T) {
	s := newTestSDK(t, newFakeNode(t))

	var (
		loaded  []string
		cleared []string
	)
	require.NoError(t, s.Subscribe(constants.NoticeAccountLoaded, func(acc *wallet.Account) {
		loaded = append(loaded, acc.Address)
	}))
	require.NoError(t, s.Subscribe(constants.NoticeAccountCleared, func(addr string) {
		cleared = append(cleared, addr)
	}))

	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)
	_, err = s.LoadAccountFromSeed("nope")
	assert.Equal(t, ErrInvalidSeed, err)
	_, err = s.LoadAccountFromMnemonicPath(testMnemonic, "")
	require.NoError(t, err)

	assert.Equal(t, []string{zeroSeedAddress, "0x9858effd232b4033e47d90003d41ec34ecaeda94"}, loaded)

	s.ClearAccount()
	s.ClearAccount()
	assert.Equal(t, []string{"0x9858effd232b4033e47d90003d41ec34ecaeda94"}, cleared)
	_, err = s.Address()
	assert.Equal(t, ErrNoAccountLoaded, err)
}

func TestSDK_KeystoreRoundTrip(t *testing.T) {
	s := newTestSDK(t, newFakeNode(t))
	keyjson, acc, err := s.CreateAccount("pw")
	require.NoError(t, err)

	s.ClearAccount()
	_, err = s.LoadAccount(keyjson, "bad")
	assert.Equal(t, ErrDecryption, err)

	got, err := s.LoadAccount(keyjson, "pw")
	require.NoError(t, err)
	assert.Equal(t, acc.Address, got.Address)

	exported, err := s.ExportKeystore("other")
	require.NoError(t, err)
	got, err = s.LoadAccount(exported, "other")
	require.NoError(t, err)
	assert.Equal(t, acc.Address, got.Address)
}

func TestSDK_NewTransactionRequiresAccount(t *testing.T) {
	s := newTestSDK(t, newFakeNode(t))
	_, err := s.NewTransaction("0", "1", "21000", recipient, "1")
	assert.Equal(t, ErrNoAccountLoaded, err)

	_, err = s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)
	_, err = s.NewTransaction("0", "0", "21000", recipient, "1")
	assert.True(t, errors.Is(err, ErrInvalidTransactionField))
}

func TestSDK_Transfer(t *testing.T) {
	n := newFakeNode(t)
	s := newTestSDK(t, n)

	_, err := s.Transfer(context.Background(), recipient, "1000")
	assert.Equal(t, ErrNoAccountLoaded, err)

	_, err = s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)

	var sent []string
	require.NoError(t, s.Subscribe(constants.NoticeTrxSent, func(hash string) { sent = append(sent, hash) }))

	hash, err := s.Transfer(context.Background(), recipient, "1000000000000000000")
	require.NoError(t, err)
	assert.Equal(t, "0x33469b22e9f636356c4160a87eb19df52b7412e8eac32a4a55ffe88ea8350788", hash)
	assert.Equal(t, []string{hash}, sent)

	assert.JSONEq(t, `"`+zeroSeedAddress+`"`, string(n.lastParams(constants.RpcGetTransactionCount)[0]))
	assert.JSONEq(t, `{"from":"`+zeroSeedAddress+`","to":"`+recipient+`","value":"0xde0b6b3a7640000"}`,
		string(n.lastParams(constants.RpcEstimateGas)[0]))

	var rawHex string
	require.NoError(t, json.Unmarshal(n.lastParams(constants.RpcSendRawTransaction)[0], &rawHex))
	raw, err := hexutil.Decode(rawHex)
	require.NoError(t, err)
	tx := new(types.Transaction)
	require.NoError(t, tx.UnmarshalBinary(raw))

	assert.Equal(t, uint64(9), tx.Nonce())
	assert.Equal(t, big.NewInt(20000000000), tx.GasPrice())
	assert.Equal(t, uint64(21000), tx.Gas())
	assert.Equal(t, recipient, strings.ToLower(tx.To().Hex()))
	assert.Equal(t, "1000000000000000000", tx.Value().String())
	from, err := types.Sender(types.NewEIP155Signer(big.NewInt(constants.DefaultChainID)), tx)
	require.NoError(t, err)
	assert.Equal(t, zeroSeedAddress, strings.ToLower(from.Hex()))
}

func TestSDK_TransferStopsOnNodeError(t *testing.T) {
	n := newFakeNode(t)
	n.handle(constants.RpcEstimateGas, func(int) (string, string) {
		return "", `{"code":-32000,"message":"insufficient funds"}`
	})
	s := newTestSDK(t, n)
	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)

	_, err = s.Transfer(context.Background(), recipient, "1")
	var rpcErr *RPCError
	require.True(t, errors.As(err, &rpcErr), "got %v", err)
	assert.Equal(t, -32000, rpcErr.Code)
	assert.Equal(t, 0, n.count(constants.RpcSendRawTransaction))

	_, err = s.Transfer(context.Background(), "0x1234", "1")
	assert.True(t, errors.Is(err, ErrInvalidTransactionField))
	_, err = s.Transfer(context.Background(), recipient, "1.5")
	assert.True(t, errors.Is(err, ErrInvalidTransactionField))
}

func TestSDK_TransferFailsWhenAccountReplaced(t *testing.T) {
	n := newFakeNode(t)
	s := newTestSDK(t, n)
	n.handle(constants.RpcEstimateGas, func(int) (string, string) {
		_, err := s.LoadAccountFromMnemonic(testMnemonic)
		assert.NoError(t, err)
		return `"0x5208"`, ""
	})
	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)

	_, err = s.Transfer(context.Background(), recipient, "1")
	assert.Equal(t, ErrAccountChanged, err)
	assert.Equal(t, 0, n.count(constants.RpcSendRawTransaction))

	addr, err := s.Address()
	require.NoError(t, err)
	assert.Equal(t, "0x5153f66b20ad6bacd605dd2f635d4319287628ba", addr)
}

func TestSDK_WaitForReceipt(t *testing.T) {
	n := newFakeNode(t)
	n.handle(constants.RpcGetTransactionReceipt, func(call int) (string, string) {
		if call < 2 {
			return "null", ""
		}
		return `{"transactionHash":"0x33469b22e9f636356c4160a87eb19df52b7412e8eac32a4a55ffe88ea8350788","status":"0x1","gasUsed":"0x5208","blockNumber":"0x2"}`, ""
	})
	s := newTestSDK(t, n)

	r, err := s.WaitForReceipt(context.Background(), "0x33469b22e9f636356c4160a87eb19df52b7412e8eac32a4a55ffe88ea8350788", 5*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, r.Succeeded())
	assert.Equal(t, 3, n.count(constants.RpcGetTransactionReceipt))
}

func TestSDK_WaitForReceiptDeadline(t *testing.T) {
	n := newFakeNode(t)
	n.handle(constants.RpcGetTransactionReceipt, func(int) (string, string) { return "null", "" })
	s := newTestSDK(t, n)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := s.WaitForReceipt(ctx, "0x01", 5*time.Millisecond)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrReceiptNotFound))

	n.handle(constants.RpcGetTransactionReceipt, func(int) (string, string) { return `"garbage"`, "" })
	_, err = s.WaitForReceipt(context.Background(), "0x01", time.Millisecond)
	var perr *ProtocolError
	assert.True(t, errors.As(err, &perr))
}
