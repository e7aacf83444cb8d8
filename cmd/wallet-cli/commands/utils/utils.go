package utils

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
)

// ReadPassphrase prompts on out and reads one passphrase from stdin without
// echoing it.
func ReadPassphrase(reader PasswordReader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	b, err := reader.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(out)
	if err != nil {
		return "", errors.Wrap(err, "read passphrase")
	}
	return string(b), nil
}

// WriteKeystore writes keyjson to path readable by the owner only and refuses
// to overwrite an existing file.
func WriteKeystore(path string, keyjson []byte) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("%s already exists", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return ioutil.WriteFile(path, keyjson, 0600)
}

func ReadKeystore(path string) ([]byte, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read keystore")
	}
	return b, nil
}
