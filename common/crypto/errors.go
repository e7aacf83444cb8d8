package crypto

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotInitialized = errors.New("crypto module is not initialized")
	ErrInvalidSeed    = errors.New("invalid seed")
	ErrDecryption     = errors.New("could not decrypt keystore")
	ErrSigning        = errors.New("could not sign transaction")
	ErrKeyGeneration  = errors.New("could not generate key material")
	ErrUnsupported    = errors.New("operation not supported by crypto module")
)

// InitializationError reports a module artifact that is missing or unusable.
type InitializationError struct {
	Path string
	Err  error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("cannot initialize crypto module %q: %v", e.Path, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}
