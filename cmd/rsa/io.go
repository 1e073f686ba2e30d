package main

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/go-rsa/rsa"
)

// formatOf maps a --form/--keyform flag value to an rsa.Format, defaulting
// to PEM for anything other than an exact "DER" match.
func formatOf(flag string) rsa.Format {
	if flag == "DER" {
		return rsa.FormatDER
	}
	return rsa.FormatPEM
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		return data, errors.Wrap(err, "reading stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "reading %s", path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return errors.Wrap(err, "writing stdout")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "writing %s", path)
}

func readPublicKey(path, keyform string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading public key %s", path)
	}
	return rsa.LoadPublicKeyPKCS1(data, formatOf(keyform))
}

func readPrivateKey(path, keyform string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading private key %s", path)
	}
	return rsa.LoadPrivateKeyPKCS1(data, formatOf(keyform))
}
