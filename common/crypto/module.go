package crypto

import (
	"github.com/coschain/cos-sdk-go/common"
	"github.com/coschain/cos-sdk-go/common/constants"
)

// KeyPair is the key material returned by a module. PrivateKey is a 32 byte
// secp256k1 scalar, PublicKey its compressed encoding and Address the
// lowercase 0x-prefixed account address.
type KeyPair struct {
	PrivateKey []byte
	PublicKey  []byte
	Address    string
}

// Wipe zeroes the private key.
func (kp *KeyPair) Wipe() {
	if kp == nil {
		return
	}
	common.Wipe(kp.PrivateKey)
	kp.PrivateKey = nil
}

func (kp *KeyPair) clone() *KeyPair {
	return &KeyPair{
		PrivateKey: common.CopyBytes(kp.PrivateKey),
		PublicKey:  common.CopyBytes(kp.PublicKey),
		Address:    kp.Address,
	}
}

func (kp *KeyPair) valid() bool {
	return kp != nil && len(kp.PrivateKey) == constants.PrivateKeyLength &&
		len(kp.PublicKey) > 0 && validAddress(kp.Address)
}

// Module is the functional contract of a cryptographic module. None of its
// operations performs network I/O. Implementations need not be safe for
// concurrent use, Adapter never enters a module from two goroutines at once.
type Module interface {
	// DeriveKeyPair deterministically derives key material from a 32 byte seed.
	DeriveKeyPair(seed []byte) (*KeyPair, error)

	// CreateKeystore generates fresh key material and returns it together
	// with its passphrase-encrypted keystore JSON.
	CreateKeystore(passphrase string) ([]byte, *KeyPair, error)

	// DecryptKeystore recovers the key material of a keystore. Wrong passphrase
	// and malformed input both fail with ErrDecryption.
	DecryptKeystore(keyjson []byte, passphrase string) (*KeyPair, error)

	// SignTransaction signs an encoded transaction payload and returns a
	// 65 byte [R || S || V] signature.
	SignTransaction(encoded, privateKey []byte) ([]byte, error)
}

// KeystoreEncrypter is implemented by modules that can encrypt existing key
// material into a keystore.
type KeystoreEncrypter interface {
	EncryptKeystore(privateKey []byte, passphrase string) ([]byte, error)
}

// PathDeriver is implemented by modules supporting BIP32 derivation paths.
type PathDeriver interface {
	DerivePath(seed []byte, path []uint32) (*KeyPair, error)
}

func validAddress(s string) bool {
	if len(s) != constants.AddressHexLength || s[:2] != "0x" {
		return false
	}
	for _, c := range s[2:] {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	return true
}
