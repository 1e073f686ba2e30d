package main

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/go-rsa/rsa"
)

func newKeygenCmd() *cobra.Command {
	var (
		pubout string
		out    string
		form   string
		nbits  int
	)

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new RSA key pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Infof("generating %d-bit key", nbits)

			pub, priv, err := rsa.NewKeys(nbits)
			if err != nil {
				return errors.Wrap(err, "generating key")
			}

			privData, err := priv.SavePKCS1(formatOf(form))
			if err != nil {
				return errors.Wrap(err, "encoding private key")
			}
			if err := writeOutput(out, privData); err != nil {
				return err
			}
			if out != "" {
				logger.Infof("private key saved to %s", out)
			}

			pubFile := pubout
			if pubFile == "" && out != "" {
				ext := filepath.Ext(out)
				pubFile = strings.TrimSuffix(out, ext) + "_pub.pem"
			}
			if pubFile == "" {
				return nil
			}

			pubData, err := pub.SavePKCS1(formatOf(form))
			if err != nil {
				return errors.Wrap(err, "encoding public key")
			}
			if err := writeOutput(pubFile, pubData); err != nil {
				return err
			}
			logger.Infof("public key saved to %s", pubFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&pubout, "pubout", "", "output filename for the public key")
	cmd.Flags().StringVar(&out, "out", "", "output filename for the private key (stdout if omitted)")
	cmd.Flags().StringVar(&form, "form", "PEM", "key format: PEM or DER")
	cmd.Flags().IntVar(&nbits, "nbits", 2048, "number of bits in the key")
	return cmd
}

func newPriv2PubCmd() *cobra.Command {
	var private, public, keyform, form string

	cmd := &cobra.Command{
		Use:   "priv2pub",
		Short: "Derive a public key from a private key",
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := readPrivateKey(private, keyform)
			if err != nil {
				return err
			}
			pub := priv.PublicKey()
			data, err := pub.SavePKCS1(formatOf(form))
			if err != nil {
				return errors.Wrap(err, "encoding public key")
			}
			return writeOutput(public, data)
		},
	}

	cmd.Flags().StringVar(&private, "private", "", "private key file")
	cmd.Flags().StringVar(&public, "public", "", "output filename for the public key (stdout if omitted)")
	cmd.Flags().StringVar(&keyform, "keyform", "PEM", "private key format: PEM or DER")
	cmd.Flags().StringVar(&form, "form", "PEM", "output public key format: PEM or DER")
	cmd.MarkFlagRequired("private")
	return cmd
}
