package sdk

import (
	"context"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/coschain/cos-sdk-go/common/crypto"
	"github.com/coschain/cos-sdk-go/config"
	"github.com/coschain/cos-sdk-go/mylog"
	"github.com/coschain/cos-sdk-go/prototype"
	"github.com/coschain/cos-sdk-go/rpc"
	"github.com/coschain/cos-sdk-go/wallet"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultPollInterval is used by WaitForReceipt when no interval is given.
const DefaultPollInterval = time.Second

// SDK ties the crypto boundary, the account session and the node client
// together. All methods are safe for concurrent use.
type SDK struct {
	cfg     *config.Config
	chainID *big.Int

	log     *logrus.Logger
	noticer EventBus.Bus

	module     crypto.Module
	httpClient *http.Client

	crypto  *crypto.Adapter
	session *wallet.Session
	client  *rpc.Client
}

func New(cfg *config.Config, opts ...Option) (*SDK, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	confCopy := *cfg
	confCopy.Headers = make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		confCopy.Headers[k] = v
	}
	cfg = &confCopy
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &SDK{cfg: cfg, chainID: big.NewInt(cfg.ChainID)}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = mylog.Init(cfg.LogDir, cfg.LogLevel, cfg.LogAge)
	}
	if s.noticer == nil {
		s.noticer = EventBus.New()
	}
	if s.httpClient == nil {
		s.httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	s.crypto = crypto.NewAdapter(s.log)
	if s.module != nil {
		s.crypto.Use(s.module)
	} else if err := s.crypto.Initialize(cfg.ModulePath, crypto.WithScrypt(cfg.ScryptN, cfg.ScryptP)); err != nil {
		return nil, err
	}
	s.session = wallet.NewSession(s.crypto, s.log)

	client, err := rpc.Dial(context.Background(), cfg.Endpoint,
		rpc.WithHTTPClient(s.httpClient),
		rpc.WithHeaders(cfg.Headers),
		rpc.WithLogger(s.log))
	if err != nil {
		return nil, err
	}
	s.client = client

	s.log.WithFields(logrus.Fields{
		"endpoint": cfg.Endpoint,
		"chainId":  cfg.ChainID,
		"module":   s.crypto.Name(),
	}).Info("sdk ready")
	return s, nil
}

func (s *SDK) Config() *config.Config {
	c := *s.cfg
	return &c
}

func (s *SDK) Logger() *logrus.Logger {
	return s.log
}

// Subscribe registers fn for one of the Notice* topics. Handlers run
// synchronously on the publishing goroutine.
func (s *SDK) Subscribe(topic string, fn interface{}) error {
	return s.noticer.Subscribe(topic, fn)
}

func (s *SDK) Unsubscribe(topic string, fn interface{}) error {
	return s.noticer.Unsubscribe(topic, fn)
}

func (s *SDK) loaded(acc *wallet.Account, err error) (*wallet.Account, error) {
	if err != nil {
		return nil, err
	}
	s.noticer.Publish(constants.NoticeAccountLoaded, acc)
	return acc, nil
}

// CreateAccount makes a new account active and returns its keystore json.
func (s *SDK) CreateAccount(passphrase string) ([]byte, *wallet.Account, error) {
	keyjson, acc, err := s.session.CreateAccount(passphrase)
	if err != nil {
		return nil, nil, err
	}
	s.noticer.Publish(constants.NoticeAccountLoaded, acc)
	return keyjson, acc, nil
}

func (s *SDK) LoadAccount(keyjson []byte, passphrase string) (*wallet.Account, error) {
	return s.loaded(s.session.LoadAccount(keyjson, passphrase))
}

func (s *SDK) LoadAccountFromSeed(seedHex string) (*wallet.Account, error) {
	return s.loaded(s.session.LoadAccountFromSeed(seedHex))
}

func (s *SDK) LoadAccountFromMnemonic(mnemonic string) (*wallet.Account, error) {
	return s.loaded(s.session.LoadAccountFromMnemonic(mnemonic))
}

func (s *SDK) LoadAccountFromMnemonicPath(mnemonic, path string) (*wallet.Account, error) {
	return s.loaded(s.session.LoadAccountFromMnemonicPath(mnemonic, path))
}

func (s *SDK) ExportKeystore(passphrase string) ([]byte, error) {
	return s.session.ExportKeystore(passphrase)
}

func (s *SDK) Address() (string, error) {
	return s.session.Address()
}

func (s *SDK) Account() (*wallet.Account, error) {
	return s.session.Account()
}

// ClearAccount wipes the active account, if any.
func (s *SDK) ClearAccount() {
	if addr := s.session.Clear(); addr != "" {
		s.noticer.Publish(constants.NoticeAccountCleared, addr)
	}
}

// boundSigner signs only while from is the active account.
type boundSigner struct {
	session *wallet.Session
	from    string
}

func (b boundSigner) SignPayload(encoded []byte) ([]byte, error) {
	return b.session.SignPayloadAs(b.from, encoded)
}

// NewTransaction builds, encodes and signs a transfer with the active account
// and returns the serialized hex. Nothing is sent.
func (s *SDK) NewTransaction(nonce, gasPrice, gasLimit, to, amount string) (string, error) {
	return s.newTransaction(s.session, nonce, gasPrice, gasLimit, to, amount)
}

func (s *SDK) newTransaction(signer prototype.Signer, nonce, gasPrice, gasLimit, to, amount string) (string, error) {
	b := prototype.NewBuilder(s.chainID)
	if err := b.Build(nonce, gasPrice, gasLimit, to, amount); err != nil {
		return "", err
	}
	if _, err := b.Encode(); err != nil {
		return "", err
	}
	if err := b.Sign(signer); err != nil {
		return "", err
	}
	return b.Serialize()
}

// Nonce returns the pending transaction count of the active account.
func (s *SDK) Nonce(ctx context.Context) (uint64, error) {
	addr, err := s.session.Address()
	if err != nil {
		return 0, err
	}
	return s.client.GetTransactionCount(ctx, addr)
}

func (s *SDK) GetTransactionCount(ctx context.Context, address string) (uint64, error) {
	return s.client.GetTransactionCount(ctx, address)
}

func (s *SDK) GasPrice(ctx context.Context) (*big.Int, error) {
	return s.client.GetGasPrice(ctx)
}

func (s *SDK) EstimateGas(ctx context.Context, from, to string, value *big.Int) (uint64, error) {
	return s.client.EstimateGas(ctx, from, to, value)
}

func (s *SDK) SendRawTransaction(ctx context.Context, signedTxHex string) (string, error) {
	hash, err := s.client.SendRawTransaction(ctx, signedTxHex)
	if err != nil {
		return "", err
	}
	s.noticer.Publish(constants.NoticeTrxSent, hash)
	return hash, nil
}

func (s *SDK) GetTransactionReceipt(ctx context.Context, txHash string) (*rpc.Receipt, error) {
	return s.client.GetTransactionReceipt(ctx, txHash)
}

// Transfer sends amount minor units from the active account to to. Nonce, gas
// price and gas limit are fetched from the node concurrently. The first
// failure is returned and nothing is retried. If the active account is
// replaced meanwhile, ErrAccountChanged is returned and nothing is sent.
func (s *SDK) Transfer(ctx context.Context, to, amount string) (string, error) {
	from, err := s.session.Address()
	if err != nil {
		return "", err
	}
	if _, err := prototype.ValidAddress(to); err != nil {
		return "", err
	}
	value, err := prototype.ParseAmount(amount)
	if err != nil {
		return "", err
	}

	var (
		nonce, gas uint64
		price      *big.Int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		nonce, err = s.client.GetTransactionCount(gctx, from)
		return
	})
	g.Go(func() (err error) {
		price, err = s.client.GetGasPrice(gctx)
		return
	})
	g.Go(func() (err error) {
		gas, err = s.client.EstimateGas(gctx, from, to, value)
		return
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	signer := boundSigner{session: s.session, from: from}
	raw, err := s.newTransaction(signer, strconv.FormatUint(nonce, 10), price.String(), strconv.FormatUint(gas, 10), to, amount)
	if err != nil {
		return "", err
	}
	hash, err := s.SendRawTransaction(ctx, raw)
	if err != nil {
		return "", err
	}
	s.log.WithFields(logrus.Fields{"from": from, "to": to, "nonce": nonce, "hash": hash}).Info("transfer sent")
	return hash, nil
}

// WaitForReceipt polls every interval until the receipt is found, ctx is done
// or the node fails with anything other than a missing receipt.
func (s *SDK) WaitForReceipt(ctx context.Context, txHash string, interval time.Duration) (*rpc.Receipt, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		r, err := s.client.GetTransactionReceipt(ctx, txHash)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, rpc.ErrReceiptNotFound) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close wipes the active account and releases the node client.
func (s *SDK) Close() {
	s.ClearAccount()
	s.client.Close()
}
