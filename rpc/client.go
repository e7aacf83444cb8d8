package rpc

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strings"

	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/coschain/cos-sdk-go/mylog"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Option func(*options)

type options struct {
	httpClient *http.Client
	headers    http.Header
	log        logrus.FieldLogger
}

// WithHTTPClient replaces the default http.Client, e.g. to set a timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithHeaders adds headers to every request.
func WithHeaders(h map[string]string) Option {
	return func(o *options) {
		for k, v := range h {
			o.headers.Set(k, v)
		}
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// Client talks JSON-RPC 2.0 to a single node endpoint. It is safe for
// concurrent use and sends one request per call with no retry.
type Client struct {
	endpoint string
	c        *gethrpc.Client
	log      logrus.FieldLogger
}

// Dial configures a client for endpoint. No request is sent for http(s)
// endpoints until the first call.
func Dial(ctx context.Context, endpoint string, opts ...Option) (*Client, error) {
	o := &options{headers: http.Header{}}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = mylog.Discard()
	}
	if o.httpClient == nil {
		o.httpClient = new(http.Client)
	}
	c, err := gethrpc.DialOptions(ctx, endpoint,
		gethrpc.WithHTTPClient(o.httpClient),
		gethrpc.WithHeaders(o.headers))
	if err != nil {
		return nil, &TransportError{Method: "dial", Err: err}
	}
	return &Client{
		endpoint: endpoint,
		c:        c,
		log:      o.log.WithField("endpoint", endpoint),
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) Close() {
	c.c.Close()
}

// call performs one round trip and classifies failures.
func (c *Client) call(ctx context.Context, method string, args ...interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.c.CallContext(ctx, &result, method, args...)
	if err != nil {
		err = classify(method, err)
		c.log.WithField("method", method).Debugf("rpc call failed: %v", err)
		return nil, err
	}
	c.log.WithField("method", method).Debug("rpc call ok")
	return result, nil
}

func classify(method string, err error) error {
	var (
		rpcErr  gethrpc.Error
		httpErr gethrpc.HTTPError
		syntax  *json.SyntaxError
		typeErr *json.UnmarshalTypeError
		urlErr  *url.Error
	)
	switch {
	// url.Error wraps whatever broke the round trip, an EOF from a dropped
	// connection included, so it is checked before the decode errors.
	case errors.As(err, &httpErr), errors.As(err, &urlErr):
		return &TransportError{Method: method, Err: err}
	case errors.As(err, &rpcErr):
		e := &RPCError{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
		var dataErr gethrpc.DataError
		if errors.As(err, &dataErr) {
			e.Data = dataErr.ErrorData()
		}
		return e
	case errors.Is(err, gethrpc.ErrNoResult),
		errors.As(err, &syntax),
		errors.As(err, &typeErr),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return &ProtocolError{Method: method, Err: err}
	default:
		return &TransportError{Method: method, Err: err}
	}
}

func decode(method string, raw json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &ProtocolError{Method: method, Err: err}
	}
	return nil
}

// GetTransactionCount returns the pending nonce of address.
func (c *Client) GetTransactionCount(ctx context.Context, address string) (uint64, error) {
	raw, err := c.call(ctx, constants.RpcGetTransactionCount, strings.ToLower(address), constants.DefaultBlockTag)
	if err != nil {
		return 0, err
	}
	var n hexutil.Uint64
	if err := decode(constants.RpcGetTransactionCount, raw, &n); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func (c *Client) GetGasPrice(ctx context.Context) (*big.Int, error) {
	raw, err := c.call(ctx, constants.RpcGasPrice)
	if err != nil {
		return nil, err
	}
	var p hexutil.Big
	if err := decode(constants.RpcGasPrice, raw, &p); err != nil {
		return nil, err
	}
	return p.ToInt(), nil
}

type callArgs struct {
	From  string       `json:"from"`
	To    string       `json:"to"`
	Value *hexutil.Big `json:"value"`
}

// EstimateGas estimates the gas of a plain value transfer.
func (c *Client) EstimateGas(ctx context.Context, from, to string, value *big.Int) (uint64, error) {
	if value == nil {
		value = new(big.Int)
	}
	args := callArgs{
		From:  strings.ToLower(from),
		To:    strings.ToLower(to),
		Value: (*hexutil.Big)(value),
	}
	raw, err := c.call(ctx, constants.RpcEstimateGas, args)
	if err != nil {
		return 0, err
	}
	var n hexutil.Uint64
	if err := decode(constants.RpcEstimateGas, raw, &n); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// SendRawTransaction submits a serialized signed transaction and returns its
// hash as reported by the node.
func (c *Client) SendRawTransaction(ctx context.Context, signedTxHex string) (string, error) {
	raw, err := c.call(ctx, constants.RpcSendRawTransaction, signedTxHex)
	if err != nil {
		return "", err
	}
	var h ethcommon.Hash
	if err := decode(constants.RpcSendRawTransaction, raw, &h); err != nil {
		return "", err
	}
	return h.Hex(), nil
}

// GetTransactionReceipt returns ErrReceiptNotFound while the node answers null.
func (c *Client) GetTransactionReceipt(ctx context.Context, txHash string) (*Receipt, error) {
	raw, err := c.call(ctx, constants.RpcGetTransactionReceipt, txHash)
	if err != nil {
		return nil, err
	}
	if string(raw) == "null" {
		return nil, ErrReceiptNotFound
	}
	r := new(Receipt)
	if err := decode(constants.RpcGetTransactionReceipt, raw, r); err != nil {
		return nil, err
	}
	return r, nil
}
