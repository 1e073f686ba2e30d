package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-rsa/rsa/pkcs1"
)

func newEncryptCmd() *cobra.Command {
	var in, out, keyform string

	cmd := &cobra.Command{
		Use:   "encrypt public_key",
		Short: "PKCS#1 v1.5 encrypt a file under a public key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := readPublicKey(args[0], keyform)
			if err != nil {
				return err
			}
			plaintext, err := readInput(in)
			if err != nil {
				return err
			}
			logger.Info("encrypting")
			ciphertext, err := pkcs1.Encrypt(plaintext, pub)
			if err != nil {
				return errors.Wrap(err, "encrypting")
			}
			return writeOutput(out, ciphertext)
		},
	}

	cmd.Flags().StringVarP(&in, "input", "i", "", "file to encrypt (stdin if omitted)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output filename (stdout if omitted)")
	cmd.Flags().StringVar(&keyform, "keyform", "PEM", "public key format: PEM or DER")
	return cmd
}

func newDecryptCmd() *cobra.Command {
	var in, out, keyform string

	cmd := &cobra.Command{
		Use:   "decrypt private_key",
		Short: "PKCS#1 v1.5 decrypt a file under a private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := readPrivateKey(args[0], keyform)
			if err != nil {
				return err
			}
			ciphertext, err := readInput(in)
			if err != nil {
				return err
			}
			logger.Info("decrypting")
			plaintext, err := pkcs1.Decrypt(ciphertext, priv)
			if err != nil {
				return err
			}
			return writeOutput(out, plaintext)
		},
	}

	cmd.Flags().StringVarP(&in, "input", "i", "", "file to decrypt (stdin if omitted)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output filename (stdout if omitted)")
	cmd.Flags().StringVar(&keyform, "keyform", "PEM", "private key format: PEM or DER")
	return cmd
}
