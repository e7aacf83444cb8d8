package wallet

import (
	"encoding/hex"
	"strings"

	"github.com/coschain/cos-sdk-go/common"
	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/coschain/cos-sdk-go/common/crypto"
	"github.com/coschain/cos-sdk-go/mylog"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// Crypter is the part of crypto.Adapter a Session depends on.
type Crypter interface {
	DeriveKeyPair(seed []byte) (*crypto.KeyPair, error)
	DerivePath(seed []byte, path []uint32) (*crypto.KeyPair, error)
	CreateKeystore(passphrase string) ([]byte, *crypto.KeyPair, error)
	DecryptKeystore(keyjson []byte, passphrase string) (*crypto.KeyPair, error)
	EncryptKeystore(privateKey []byte, passphrase string) ([]byte, error)
	SignTransaction(encoded, privateKey []byte) ([]byte, error)
}

// Session owns the single active account. replace and Clear are the only
// mutators of the slot and hold the write lock; SignPayload holds the read
// lock for the whole signing call, so a replacement waits for in-flight
// signatures instead of swapping the key underneath them.
type Session struct {
	crypter Crypter
	log     logrus.FieldLogger

	mu      deadlock.RWMutex
	account *Account
	privKey []byte
}

func NewSession(crypter Crypter, log logrus.FieldLogger) *Session {
	if log == nil {
		log = mylog.Discard()
	}
	return &Session{crypter: crypter, log: log}
}

// CreateAccount generates a new account, makes it active and returns its
// keystore. Persisting the keystore is up to the caller.
func (s *Session) CreateAccount(passphrase string) ([]byte, *Account, error) {
	keyjson, kp, err := s.crypter.CreateKeystore(passphrase)
	if err != nil {
		return nil, nil, err
	}
	return keyjson, s.replace(kp, Created), nil
}

func (s *Session) LoadAccount(keyjson []byte, passphrase string) (*Account, error) {
	kp, err := s.crypter.DecryptKeystore(keyjson, passphrase)
	if err != nil {
		return nil, err
	}
	return s.replace(kp, FromKeystore), nil
}

// LoadAccountFromSeed expects exactly 64 hex characters, optionally 0x prefixed.
func (s *Session) LoadAccountFromSeed(seedHex string) (*Account, error) {
	raw := common.Trim0x(strings.TrimSpace(seedHex))
	if len(raw) != constants.SeedHexLength || !common.IsHex(raw) {
		return nil, crypto.ErrInvalidSeed
	}
	seed, err := hex.DecodeString(raw)
	if err != nil {
		return nil, crypto.ErrInvalidSeed
	}
	defer common.Wipe(seed)
	return s.loadSeed(seed, FromSeed)
}

func (s *Session) loadSeed(seed []byte, p Provenance) (*Account, error) {
	kp, err := s.crypter.DeriveKeyPair(seed)
	if err != nil {
		return nil, err
	}
	return s.replace(kp, p), nil
}

// LoadAccountFromMnemonic derives the account from the first 32 bytes of the
// mnemonic's BIP39 seed.
func (s *Session) LoadAccountFromMnemonic(mnemonic string) (*Account, error) {
	seed, err := mnemonicSeed(mnemonic)
	if err != nil {
		return nil, err
	}
	defer common.Wipe(seed)
	return s.loadSeed(seed[:constants.SeedLength], FromMnemonic)
}

// LoadAccountFromMnemonicPath derives the account along a BIP32 path from the
// full BIP39 seed, an empty path means m/44'/60'/0'/0/0.
func (s *Session) LoadAccountFromMnemonicPath(mnemonic, path string) (*Account, error) {
	if path == "" {
		path = constants.DefaultHDPath
	}
	dp, err := ParseDerivationPath(path)
	if err != nil {
		return nil, errors.WithMessage(err, "derivation path")
	}
	seed, err := mnemonicSeed(mnemonic)
	if err != nil {
		return nil, err
	}
	defer common.Wipe(seed)
	kp, err := s.crypter.DerivePath(seed, dp)
	if err != nil {
		return nil, err
	}
	return s.replace(kp, FromMnemonicPath), nil
}

// ExportKeystore encrypts the active private key with passphrase.
func (s *Session) ExportKeystore(passphrase string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.privKey == nil {
		return nil, ErrNoAccountLoaded
	}
	return s.crypter.EncryptKeystore(s.privKey, passphrase)
}

func (s *Session) Address() (string, error) {
	acc, err := s.Account()
	if err != nil {
		return "", err
	}
	return acc.Address, nil
}

func (s *Session) Account() (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return nil, ErrNoAccountLoaded
	}
	acc := *s.account
	return &acc, nil
}

// SignPayload signs encoded with the active private key.
func (s *Session) SignPayload(encoded []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.privKey == nil {
		return nil, ErrNoAccountLoaded
	}
	return s.crypter.SignTransaction(encoded, s.privKey)
}

// SignPayloadAs signs like SignPayload but only while address is still the
// active account.
func (s *Session) SignPayloadAs(address string, encoded []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.privKey == nil {
		return nil, ErrNoAccountLoaded
	}
	if !strings.EqualFold(s.account.Address, address) {
		return nil, ErrAccountChanged
	}
	return s.crypter.SignTransaction(encoded, s.privKey)
}

// Clear wipes the active key material and returns the address it held, empty
// if no account was loaded.
func (s *Session) Clear() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var addr string
	if s.account != nil {
		addr = s.account.Address
		s.log.WithField("address", addr).Info("account cleared")
	}
	s.clearLocked()
	return addr
}

func (s *Session) clearLocked() {
	common.Wipe(s.privKey)
	s.privKey = nil
	s.account = nil
}

// replace takes ownership of kp.PrivateKey.
func (s *Session) replace(kp *crypto.KeyPair, p Provenance) *Account {
	acc := &Account{
		Address:    kp.Address,
		PublicKey:  hexutil.Encode(kp.PublicKey),
		Provenance: p,
	}
	s.mu.Lock()
	s.clearLocked()
	s.account = acc
	s.privKey = kp.PrivateKey
	kp.PrivateKey = nil
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"address": acc.Address, "provenance": p.String()}).Info("account loaded")
	out := *acc
	return &out
}
