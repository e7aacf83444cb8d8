package crypto

import (
	"os"
	"plugin"

	"github.com/coschain/cos-sdk-go/common"
	"github.com/coschain/cos-sdk-go/common/constants"
	"github.com/pkg/errors"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

// ModuleSymbol is the symbol a plugin artifact must export. It has to be a
// variable of type crypto.Module.
const ModuleSymbol = "Module"

// callMu serializes every call into any module of the process.
var callMu deadlock.Mutex

var (
	loadMu deadlock.Mutex
	loaded = make(map[string]Module)
)

// Adapter is the only way the rest of the SDK reaches a Module. A zero
// Adapter fails every operation with ErrNotInitialized.
type Adapter struct {
	mu     deadlock.RWMutex
	module Module
	path   string
	log    logrus.FieldLogger
}

func NewAdapter(log logrus.FieldLogger) *Adapter {
	return &Adapter{log: log}
}

// Initialize loads the module found at path. An empty path selects the
// built-in native module configured by opts. A plugin artifact is opened at
// most once per process, later calls with the same path reuse it.
func (a *Adapter) Initialize(path string, opts ...Option) error {
	var (
		m   Module
		err error
	)
	if path == "" {
		m = NewNativeModule(opts...)
	} else if m, err = loadPlugin(path); err != nil {
		return err
	}
	a.mu.Lock()
	a.module = m
	a.path = path
	a.mu.Unlock()
	if a.log != nil {
		a.log.WithField("module", a.Name()).Info("crypto module initialized")
	}
	return nil
}

// Use installs an already constructed module.
func (a *Adapter) Use(m Module) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.module = m
	a.path = ""
}

func (a *Adapter) Initialized() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.module != nil
}

func (a *Adapter) Name() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.path == "" {
		return "native"
	}
	return a.path
}

func loadPlugin(path string) (Module, error) {
	loadMu.Lock()
	defer loadMu.Unlock()
	if m, ok := loaded[path]; ok {
		return m, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, &InitializationError{Path: path, Err: err}
	}
	p, err := plugin.Open(path)
	if err != nil {
		return nil, &InitializationError{Path: path, Err: err}
	}
	sym, err := p.Lookup(ModuleSymbol)
	if err != nil {
		return nil, &InitializationError{Path: path, Err: err}
	}
	var m Module
	switch v := sym.(type) {
	case *Module:
		m = *v
	case Module:
		m = v
	}
	if m == nil {
		return nil, &InitializationError{Path: path, Err: errors.Errorf("symbol %s is %T, not a crypto.Module", ModuleSymbol, sym)}
	}
	loaded[path] = m
	return m, nil
}

func (a *Adapter) current() (Module, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.module == nil {
		return nil, ErrNotInitialized
	}
	return a.module, nil
}

// enter runs fn while holding the process-wide module lock.
func enter(fn func()) {
	callMu.Lock()
	defer callMu.Unlock()
	fn()
}

func (a *Adapter) DeriveKeyPair(seed []byte) (*KeyPair, error) {
	m, err := a.current()
	if err != nil {
		return nil, err
	}
	if len(seed) != constants.SeedLength {
		return nil, ErrInvalidSeed
	}
	in := common.CopyBytes(seed)
	defer common.Wipe(in)

	var kp *KeyPair
	enter(func() { kp, err = m.DeriveKeyPair(in) })
	if err != nil {
		if errors.Is(err, ErrInvalidSeed) {
			return nil, err
		}
		return nil, errors.Wrap(ErrInvalidSeed, err.Error())
	}
	return checked(kp, ErrInvalidSeed)
}

func (a *Adapter) CreateKeystore(passphrase string) ([]byte, *KeyPair, error) {
	m, err := a.current()
	if err != nil {
		return nil, nil, err
	}
	var (
		keyjson []byte
		kp      *KeyPair
	)
	enter(func() { keyjson, kp, err = m.CreateKeystore(passphrase) })
	if err != nil {
		kp.Wipe()
		if errors.Is(err, ErrKeyGeneration) {
			return nil, nil, err
		}
		return nil, nil, errors.Wrap(ErrKeyGeneration, err.Error())
	}
	if len(keyjson) == 0 {
		kp.Wipe()
		return nil, nil, errors.Wrap(ErrKeyGeneration, "module returned an empty keystore")
	}
	kp, err = checked(kp, ErrKeyGeneration)
	if err != nil {
		return nil, nil, err
	}
	return common.CopyBytes(keyjson), kp, nil
}

// DecryptKeystore never tells apart a wrong passphrase from a malformed
// keystore, every module failure becomes ErrDecryption.
func (a *Adapter) DecryptKeystore(keyjson []byte, passphrase string) (*KeyPair, error) {
	m, err := a.current()
	if err != nil {
		return nil, err
	}
	var kp *KeyPair
	enter(func() { kp, err = m.DecryptKeystore(common.CopyBytes(keyjson), passphrase) })
	if err != nil {
		kp.Wipe()
		return nil, ErrDecryption
	}
	return checked(kp, ErrDecryption)
}

func (a *Adapter) SignTransaction(encoded, privateKey []byte) ([]byte, error) {
	m, err := a.current()
	if err != nil {
		return nil, err
	}
	if len(encoded) == 0 {
		return nil, errors.Wrap(ErrSigning, "empty payload")
	}
	if len(privateKey) != constants.PrivateKeyLength {
		return nil, errors.Wrap(ErrSigning, "malformed private key")
	}
	key := common.CopyBytes(privateKey)
	defer common.Wipe(key)

	var sig []byte
	enter(func() { sig, err = m.SignTransaction(common.CopyBytes(encoded), key) })
	if err != nil {
		if errors.Is(err, ErrSigning) {
			return nil, err
		}
		return nil, errors.Wrap(ErrSigning, err.Error())
	}
	if len(sig) != constants.SignatureLength {
		return nil, errors.Wrapf(ErrSigning, "module returned a %d byte signature", len(sig))
	}
	return common.CopyBytes(sig), nil
}

func (a *Adapter) EncryptKeystore(privateKey []byte, passphrase string) ([]byte, error) {
	m, err := a.current()
	if err != nil {
		return nil, err
	}
	enc, ok := m.(KeystoreEncrypter)
	if !ok {
		return nil, ErrUnsupported
	}
	key := common.CopyBytes(privateKey)
	defer common.Wipe(key)

	var keyjson []byte
	enter(func() { keyjson, err = enc.EncryptKeystore(key, passphrase) })
	if err != nil {
		return nil, errors.Wrap(ErrKeyGeneration, err.Error())
	}
	return common.CopyBytes(keyjson), nil
}

// DerivePath derives key material along a BIP32 path from a full BIP39 seed.
func (a *Adapter) DerivePath(seed []byte, path []uint32) (*KeyPair, error) {
	m, err := a.current()
	if err != nil {
		return nil, err
	}
	pd, ok := m.(PathDeriver)
	if !ok {
		return nil, ErrUnsupported
	}
	if len(seed) != constants.BIP39SeedLength {
		return nil, ErrInvalidSeed
	}
	in := common.CopyBytes(seed)
	defer common.Wipe(in)

	var kp *KeyPair
	enter(func() { kp, err = pd.DerivePath(in, append([]uint32(nil), path...)) })
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSeed, err.Error())
	}
	return checked(kp, ErrInvalidSeed)
}

// checked validates key material coming out of a module and detaches it from
// any buffer the module may still hold.
func checked(kp *KeyPair, kind error) (*KeyPair, error) {
	if !kp.valid() {
		kp.Wipe()
		return nil, errors.Wrap(kind, "module returned malformed key material")
	}
	out := kp.clone()
	kp.Wipe()
	return out, nil
}
