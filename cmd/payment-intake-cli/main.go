// Package main is the entry point for the payment-intake-cli application.
// It initializes the root command, registers the intake sub-commands
// (keygen, encrypt, payload) and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "payment_intake_service/cmd/payment-intake-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "payment-intake-cli",
		Short: "Payment intake tooling CLI",
		Long: `payment-intake-cli is a command-line tool for working with the payment
intake service locally. It generates RSA key pairs in the encodings the
server uses, encrypts JSON payment payloads into base64 submission bodies
and writes sample payloads for testing.`,
	}

	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitIntakeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize intake commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
