package wallet

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coschain/cos-sdk-go/common"
	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/coschain/cos-sdk-go/common/crypto"
	"github.com/coschain/cos-sdk-go/common/crypto/mock_crypto"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	zeroSeedHex     = "0000000000000000000000000000000000000000000000000000000000000000"
	zeroSeedAddress = "0xeb317b9f2e0891d66c061ddc3f5ee7ed42d70a44"
	zeroSeedPubKey  = "0x03d63d9fd9fd772a989c5b90edb37716406356e98273e5f98fe07652247a3a8275"
	zeroSeedPrivKey = "0x82a34e3867ea7ea4e67e27865d500ae84e98d07ab1bab06526f0a5a5fdcc3eba"

	seqSeedHex     = "0x000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"
	seqSeedAddress = "0x34c2a1b33d9f25a49bff161d0ea8540e64ed13be"

	testMnemonic        = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"
	testMnemonicAddress = "0x5153f66b20ad6bacd605dd2f635d4319287628ba"
	testBIP44Address    = "0x9858effd232b4033e47d90003d41ec34ecaeda94"
)

func nativeAdapter(t *testing.T) *crypto.Adapter {
	a := crypto.NewAdapter(nil)
	require.NoError(t, a.Initialize("", crypto.WithScrypt(constants.LightScryptN, constants.LightScryptP)))
	return a
}

func TestSession_SeedIsDeterministic(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	for i := 0; i < 3; i++ {
		acc, err := s.LoadAccountFromSeed(zeroSeedHex)
		require.NoError(t, err)
		assert.Equal(t, zeroSeedAddress, acc.Address)
		assert.Equal(t, zeroSeedPubKey, acc.PublicKey)
		assert.Equal(t, FromSeed, acc.Provenance)

		addr, err := s.Address()
		require.NoError(t, err)
		assert.Equal(t, zeroSeedAddress, addr)
	}

	acc, err := s.LoadAccountFromSeed(seqSeedHex)
	require.NoError(t, err)
	assert.Equal(t, seqSeedAddress, acc.Address)
}

func TestSession_InvalidSeedKeepsPreviousAccount(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)

	for _, bad := range []string{
		"",
		"00",
		zeroSeedHex[:63],
		zeroSeedHex + "00",
		"zz" + zeroSeedHex[2:],
		"0x" + zeroSeedHex[:62],
	} {
		_, err := s.LoadAccountFromSeed(bad)
		assert.Equal(t, crypto.ErrInvalidSeed, err, "seed %q", bad)

		addr, err := s.Address()
		require.NoError(t, err)
		assert.Equal(t, zeroSeedAddress, addr)
	}
}

func TestSession_NoAccountLoaded(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	_, err := s.Address()
	assert.Equal(t, ErrNoAccountLoaded, err)
	_, err = s.Account()
	assert.Equal(t, ErrNoAccountLoaded, err)
	_, err = s.SignPayload([]byte{0xc0})
	assert.Equal(t, ErrNoAccountLoaded, err)
	_, err = s.ExportKeystore("pw")
	assert.Equal(t, ErrNoAccountLoaded, err)
}

func TestSession_Mnemonic(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	acc, err := s.LoadAccountFromMnemonic("  " + strings.Replace(testMnemonic, " ", "   ", 3) + "\n")
	require.NoError(t, err)
	assert.Equal(t, testMnemonicAddress, acc.Address)
	assert.Equal(t, FromMnemonic, acc.Provenance)

	acc, err = s.LoadAccountFromMnemonicPath(testMnemonic, "")
	require.NoError(t, err)
	assert.Equal(t, testBIP44Address, acc.Address)

	acc, err = s.LoadAccountFromMnemonicPath(testMnemonic, "0")
	require.NoError(t, err)
	assert.Equal(t, testBIP44Address, acc.Address)
	assert.Equal(t, FromMnemonicPath, acc.Provenance)
}

func TestSession_InvalidMnemonic(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)

	for _, bad := range []string{
		"",
		"abandon abandon abandon",
		strings.Repeat("abandon ", 12),
		"notaword abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about",
	} {
		_, err := s.LoadAccountFromMnemonic(bad)
		assert.Equal(t, ErrInvalidMnemonic, err, "mnemonic %q", bad)
		_, err = s.LoadAccountFromMnemonicPath(bad, "")
		assert.Equal(t, ErrInvalidMnemonic, err)
	}
	addr, _ := s.Address()
	assert.Equal(t, zeroSeedAddress, addr)

	_, err = s.LoadAccountFromMnemonicPath(testMnemonic, "/bad")
	assert.Error(t, err)
}

func TestSession_KeystoreRoundTrip(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	keyjson, created, err := s.CreateAccount("pw")
	require.NoError(t, err)
	assert.Equal(t, Created, created.Provenance)

	_, err = s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)

	_, err = s.LoadAccount(keyjson, "wrong")
	assert.Equal(t, crypto.ErrDecryption, err)
	addr, _ := s.Address()
	assert.Equal(t, zeroSeedAddress, addr)

	loaded, err := s.LoadAccount(keyjson, "pw")
	require.NoError(t, err)
	assert.Equal(t, created.Address, loaded.Address)
	assert.Equal(t, created.PublicKey, loaded.PublicKey)
	assert.Equal(t, FromKeystore, loaded.Provenance)
}

func TestSession_ExportKeystore(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)
	keyjson, err := s.ExportKeystore("pw")
	require.NoError(t, err)

	s.Clear()
	acc, err := s.LoadAccount(keyjson, "pw")
	require.NoError(t, err)
	assert.Equal(t, zeroSeedAddress, acc.Address)
}

func TestSession_ClearOverwritesKey(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)

	held := s.privKey
	assert.Equal(t, zeroSeedPrivKey, hexutil.Encode(held))
	assert.Equal(t, zeroSeedAddress, s.Clear())
	assert.Equal(t, make([]byte, 32), held)
	assert.Equal(t, "", s.Clear())
	_, err = s.Address()
	assert.Equal(t, ErrNoAccountLoaded, err)

	_, err = s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)
	held = s.privKey
	_, err = s.LoadAccountFromSeed(seqSeedHex)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), held, "replaced key must be wiped")
}

func TestSession_DecryptionErrorFromModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := mock_crypto.NewMockModule(ctrl)
	a := crypto.NewAdapter(nil)
	a.Use(m)

	m.EXPECT().DecryptKeystore(gomock.Any(), gomock.Any()).Return(nil, errors.New("malformed"))
	s := NewSession(a, nil)
	_, err := s.LoadAccount([]byte("{}"), "pw")
	assert.Equal(t, crypto.ErrDecryption, err)
}

func TestSession_SignUsesActiveKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := mock_crypto.NewMockModule(ctrl)
	a := crypto.NewAdapter(nil)
	a.Use(m)

	m.EXPECT().DeriveKeyPair(gomock.Any()).DoAndReturn(func(seed []byte) (*crypto.KeyPair, error) {
		return &crypto.KeyPair{
			PrivateKey: []byte(strings.Repeat("k", 32)),
			PublicKey:  []byte{2, 1},
			Address:    "0x00000000000000000000000000000000000000aa",
		}, nil
	})
	m.EXPECT().SignTransaction([]byte{0xc0}, []byte(strings.Repeat("k", 32))).Return(make([]byte, 65), nil)

	s := NewSession(a, nil)
	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)
	sig, err := s.SignPayload([]byte{0xc0})
	require.NoError(t, err)
	assert.Len(t, sig, 65)
}

func TestSession_SignPayloadAs(t *testing.T) {
	s := NewSession(nativeAdapter(t), nil)
	_, err := s.SignPayloadAs(zeroSeedAddress, []byte{0xc0})
	assert.Equal(t, ErrNoAccountLoaded, err)

	_, err = s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)
	sig, err := s.SignPayloadAs(strings.ToUpper(zeroSeedAddress[2:]), []byte{0xc0})
	assert.Equal(t, ErrAccountChanged, err)
	assert.Nil(t, sig)

	sig, err = s.SignPayloadAs("0x"+strings.ToUpper(zeroSeedAddress[2:]), []byte{0xc0})
	require.NoError(t, err)
	assert.Len(t, sig, 65)

	_, err = s.LoadAccountFromSeed(seqSeedHex)
	require.NoError(t, err)
	_, err = s.SignPayloadAs(zeroSeedAddress, []byte{0xc0})
	assert.Equal(t, ErrAccountChanged, err)
	sig, err = s.SignPayloadAs(seqSeedAddress, []byte{0xc0})
	require.NoError(t, err)
	assert.Len(t, sig, 65)
}

// blockingCrypter parks SignTransaction until released and echoes the key it
// was handed as the signature.
type blockingCrypter struct {
	*crypto.Adapter
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCrypter) SignTransaction(encoded, privateKey []byte) ([]byte, error) {
	key := common.CopyBytes(privateKey)
	b.once.Do(func() { close(b.entered) })
	<-b.release
	return key, nil
}

func TestSession_ReplaceWaitsForInFlightSign(t *testing.T) {
	bc := &blockingCrypter{
		Adapter: nativeAdapter(t),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := NewSession(bc, nil)
	_, err := s.LoadAccountFromSeed(zeroSeedHex)
	require.NoError(t, err)

	sigCh := make(chan []byte, 1)
	go func() {
		sig, _ := s.SignPayload([]byte{0xc0})
		sigCh <- sig
	}()
	<-bc.entered

	loaded := make(chan *Account, 1)
	go func() {
		acc, _ := s.LoadAccountFromSeed(seqSeedHex)
		loaded <- acc
	}()

	select {
	case <-loaded:
		t.Fatal("account replaced while a signature was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(bc.release)
	sig := <-sigCh
	assert.Equal(t, zeroSeedPrivKey, hexutil.Encode(sig))

	acc := <-loaded
	require.NotNil(t, acc)
	assert.Equal(t, seqSeedAddress, acc.Address)
	addr, _ := s.Address()
	assert.Equal(t, seqSeedAddress, addr)
}
