// Command rsa is a small CLI shell around the github.com/go-rsa/rsa
// library: key generation, PKCS#1 encryption/decryption, and PKCS#1
// signing/verification.
package main

import (
	"fmt"
	"os"

	logging "github.com/ipfs/go-log"
	"github.com/spf13/cobra"
)

var logger = logging.Logger("rsa")

func main() {
	root := &cobra.Command{
		Use:   "rsa",
		Short: "Pure math/big RSA key management and PKCS#1 operations",
	}

	root.AddCommand(
		newKeygenCmd(),
		newPriv2PubCmd(),
		newEncryptCmd(),
		newDecryptCmd(),
		newSignCmd(),
		newVerifyCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
