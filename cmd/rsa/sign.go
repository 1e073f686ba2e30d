package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-rsa/rsa/pkcs1"
)

func newSignCmd() *cobra.Command {
	var in, out, keyform string

	cmd := &cobra.Command{
		Use:   "sign private_key hash",
		Short: fmt.Sprintf("Sign a file with a private key; hash is one of %s", strings.Join(pkcs1.HashNames(), ", ")),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := readPrivateKey(args[0], keyform)
			if err != nil {
				return err
			}
			message, err := readInput(in)
			if err != nil {
				return err
			}
			logger.Info("signing")
			sig, err := pkcs1.SignBytes(message, priv, args[1])
			if err != nil {
				return errors.Wrap(err, "signing")
			}
			return writeOutput(out, sig)
		},
	}

	cmd.Flags().StringVarP(&in, "input", "i", "", "file to sign (stdin if omitted)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output filename for the signature (stdout if omitted)")
	cmd.Flags().StringVar(&keyform, "keyform", "PEM", "private key format: PEM or DER")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var in, keyform string

	cmd := &cobra.Command{
		Use:   "verify public_key signature_file",
		Short: "Verify a file's signature against a public key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := readPublicKey(args[0], keyform)
			if err != nil {
				return err
			}
			sig, err := readInput(args[1])
			if err != nil {
				return errors.Wrap(err, "reading signature")
			}
			message, err := readInput(in)
			if err != nil {
				return err
			}

			logger.Info("verifying")
			hashName, err := pkcs1.Verify(bytes.NewReader(message), sig, pub)
			if err != nil {
				return err
			}
			logger.Infof("verification succeeded, hash method %s", hashName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "input", "i", "", "file to verify (stdin if omitted)")
	cmd.Flags().StringVar(&keyform, "keyform", "PEM", "public key format: PEM or DER")
	return cmd
}
