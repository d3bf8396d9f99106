// Command lamportsig is a file-based keygen/sign/verify driver around the
// lamportsig core library. Adapted from xmssmt/main.go's single-command
// CLI, generalized to cobra's subcommand tree and to the
// keygen/sign/verify/inspect surface this scheme needs.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hashsig/lamportsig"
)

func main() {
	root := &cobra.Command{
		Use:           "lamportsig",
		Short:         "Lamport one-time signatures composed into a many-time scheme via a Merkle commitment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(keygenCmd(), signCmd(), verifyCmd(), inspectCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen <private-key-path> <public-key-path> <n>",
		Short: "Generate a many-time private key of the given capacity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid capacity %q: %w", args[2], err)
			}
			lamportsig.EnableLogging()
			sk, err := lamportsig.GenerateKey(lamportsig.DefaultRNG, n)
			if err != nil {
				return fmt.Errorf("keygen: %w", err)
			}

			c, err := openKeyContainer(args[0])
			if err != nil {
				return err
			}
			defer c.Close()
			if err := c.save(sk.Secrets(), sk.Counter()); err != nil {
				return err
			}

			if err := os.WriteFile(args[1], lamportsig.EncodeCommitment(sk.PublicKey()), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[1], err)
			}
			return nil
		},
	}
}

func signCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <message-path> <private-key-path> <signature-path>",
		Short: "Sign a message with the next unused one-time key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			c, err := openKeyContainer(args[1])
			if err != nil {
				return err
			}
			defer c.Close()

			secrets, counter, err := c.load()
			if err != nil {
				return err
			}
			sk, err := lamportsig.RestorePrivateKey(secrets, counter)
			if err != nil {
				return fmt.Errorf("restoring %s: %w", args[1], err)
			}

			sig := sk.Sign(message)
			if sig == nil {
				fmt.Fprintln(os.Stderr, "ran out of signatures for this private key")
				return errors.New("key exhausted")
			}

			if err := os.WriteFile(args[2], lamportsig.EncodeSignature(sig), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[2], err)
			}
			return c.bumpCounter(sk.Counter())
		},
	}
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <message-path> <signature-path> <public-key-path>",
		Short: "Verify a signature against a message and a many-time public key",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			sigBytes, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			pubBytes, err := os.ReadFile(args[2])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[2], err)
			}

			sig, err := lamportsig.DecodeSignature(sigBytes)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[1], err)
			}
			pub, err := lamportsig.DecodeCommitment(pubBytes)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[2], err)
			}

			fmt.Printf("signature validity: %v\n", lamportsig.Verify(pub, message, sig))
			return nil
		},
	}
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <public-key-path>",
		Short: "Print a many-time public key's commitment root and capacity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			pub, err := lamportsig.DecodeCommitment(buf)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			fmt.Printf("root:     %x\n", pub.Root)
			fmt.Printf("capacity: %d\n", pub.NumItems)
			return nil
		},
	}
}
