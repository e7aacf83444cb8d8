package wallet

import "github.com/pkg/errors"

var (
	ErrNoAccountLoaded = errors.New("no account loaded, create or load one first")
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrAccountChanged  = errors.New("active account changed")
)
