package crypto

import (
	"crypto/ecdsa"
	"encoding/json"
	"strings"

	"github.com/coschain/cos-sdk-go/common"
	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip32"
)

type Option func(*nativeModule)

// WithScrypt sets the scrypt cost parameters used for new keystores.
func WithScrypt(n, p int) Option {
	return func(m *nativeModule) {
		if n > 0 {
			m.scryptN = n
		}
		if p > 0 {
			m.scryptP = p
		}
	}
}

// nativeModule runs the secp256k1 / keccak / scrypt primitives of go-ethereum
// in process. Seeds are turned into keys the way BIP32 derives a master key.
type nativeModule struct {
	scryptN int
	scryptP int
}

func NewNativeModule(opts ...Option) Module {
	m := &nativeModule{
		scryptN: constants.StandardScryptN,
		scryptP: constants.StandardScryptP,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// AddressHex renders an address as lowercase 0x-prefixed hex.
func AddressHex(addr ethcommon.Address) string {
	return hexutil.Encode(addr.Bytes())
}

func keyPairFromECDSA(key *ecdsa.PrivateKey) *KeyPair {
	return &KeyPair{
		PrivateKey: ethcrypto.FromECDSA(key),
		PublicKey:  ethcrypto.CompressPubkey(&key.PublicKey),
		Address:    AddressHex(ethcrypto.PubkeyToAddress(key.PublicKey)),
	}
}

func keyPairFromBytes(priv []byte) (*KeyPair, error) {
	key, err := ethcrypto.ToECDSA(priv)
	if err != nil {
		return nil, err
	}
	return keyPairFromECDSA(key), nil
}

func (m *nativeModule) DeriveKeyPair(seed []byte) (*KeyPair, error) {
	if len(seed) != constants.SeedLength {
		return nil, ErrInvalidSeed
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSeed, err.Error())
	}
	defer common.Wipe(master.Key)
	return keyPairFromBytes(master.Key)
}

func (m *nativeModule) DerivePath(seed []byte, path []uint32) (*KeyPair, error) {
	key, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	for _, n := range path {
		child, err := key.NewChildKey(n)
		common.Wipe(key.Key)
		if err != nil {
			return nil, err
		}
		key = child
	}
	defer common.Wipe(key.Key)
	// older bip32 keys drop leading zero bytes
	return keyPairFromBytes(ethcommon.LeftPadBytes(key.Key, constants.PrivateKeyLength))
}

func (m *nativeModule) encrypt(key *ecdsa.PrivateKey, passphrase string) ([]byte, error) {
	k := &keystore.Key{
		Id:         uuid.New(),
		Address:    ethcrypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}
	return keystore.EncryptKey(k, passphrase, m.scryptN, m.scryptP)
}

func (m *nativeModule) CreateKeystore(passphrase string) ([]byte, *KeyPair, error) {
	key, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, nil, errors.Wrap(ErrKeyGeneration, err.Error())
	}
	keyjson, err := m.encrypt(key, passphrase)
	if err != nil {
		return nil, nil, errors.Wrap(ErrKeyGeneration, err.Error())
	}
	return keyjson, keyPairFromECDSA(key), nil
}

func (m *nativeModule) EncryptKeystore(privateKey []byte, passphrase string) ([]byte, error) {
	key, err := ethcrypto.ToECDSA(privateKey)
	if err != nil {
		return nil, err
	}
	return m.encrypt(key, passphrase)
}

type storedAddress struct {
	Address string `json:"address"`
}

func (m *nativeModule) DecryptKeystore(keyjson []byte, passphrase string) (*KeyPair, error) {
	var stored storedAddress
	if err := json.Unmarshal(keyjson, &stored); err != nil {
		return nil, ErrDecryption
	}
	key, err := keystore.DecryptKey(keyjson, passphrase)
	if err != nil {
		return nil, ErrDecryption
	}
	kp := keyPairFromECDSA(key.PrivateKey)
	if !strings.EqualFold(common.Trim0x(stored.Address), common.Trim0x(kp.Address)) {
		kp.Wipe()
		return nil, ErrDecryption
	}
	return kp, nil
}

func (m *nativeModule) SignTransaction(encoded, privateKey []byte) ([]byte, error) {
	if len(encoded) == 0 {
		return nil, ErrSigning
	}
	key, err := ethcrypto.ToECDSA(privateKey)
	if err != nil {
		return nil, errors.Wrap(ErrSigning, err.Error())
	}
	sig, err := ethcrypto.Sign(ethcrypto.Keccak256(encoded), key)
	if err != nil {
		return nil, errors.Wrap(ErrSigning, err.Error())
	}
	return sig, nil
}
