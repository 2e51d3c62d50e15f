package commands

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"payment_intake_service/internal/domain/keys"
	"payment_intake_service/internal/domain/payment"
	"payment_intake_service/internal/infrastructure/cryptography"
	"payment_intake_service/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// IntakeCommandHandler encapsulates logic for producing keypairs and
// encrypted submission bodies via CLI.
type IntakeCommandHandler struct {
	rsaProcessor keys.RSAProcessor
	logger       logger.Logger
}

// NewIntakeCommandHandler initializes a new IntakeCommandHandler with logging and an RSA processor.
func NewIntakeCommandHandler() (*IntakeCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	return &IntakeCommandHandler{
		rsaProcessor: rsaProcessor,
		logger:       loggerInstance,
	}, nil
}

// KeygenCmd generates an RSA key pair and persists it in a selected directory
// using the same encodings the server expects (SPKI public, PKCS#8 private).
func (commandHandler *IntakeCommandHandler) KeygenCmd(cmd *cobra.Command, _ []string) {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		commandHandler.logger.Error("invalid key-size flag: %v", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag: %v", err)
		return
	}

	privateKey, publicKey, err := commandHandler.rsaProcessor.GenerateKeys(keySize)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	privateKeyFilePath := filepath.Join(keyDir, "private.pem")
	err = commandHandler.rsaProcessor.SavePrivateKeyToFile(privateKey, privateKeyFilePath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	publicKeyFilePath := filepath.Join(keyDir, "public.pem")
	err = commandHandler.rsaProcessor.SavePublicKeyToFile(publicKey, publicKeyFilePath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Key pair written to ", keyDir)
}

// EncryptCmd encrypts a JSON payload file with a public key and emits the
// base64 ciphertext a client would submit.
func (commandHandler *IntakeCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) {
	payloadFile, err := cmd.Flags().GetString("payload-file")
	if err != nil {
		commandHandler.logger.Error("invalid payload-file flag: %v", err)
		return
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		commandHandler.logger.Error("invalid public-key flag: %v", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}

	publicKey, err := commandHandler.rsaProcessor.ReadPublicKeyFromFile(publicKeyPath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	plainText, err := os.ReadFile(filepath.Clean(payloadFile))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	encryptedData, err := commandHandler.rsaProcessor.Encrypt(plainText, publicKey)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	ciphertextB64 := base64.StdEncoding.EncodeToString(encryptedData)

	if outputFile == "" {
		fmt.Println(ciphertextB64)
		return
	}

	err = os.WriteFile(outputFile, []byte(ciphertextB64), 0600)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Ciphertext path ", outputFile)
}

// PayloadCmd writes a sample payment payload that passes server-side
// validation, for use with the encrypt command.
func (commandHandler *IntakeCommandHandler) PayloadCmd(cmd *cobra.Command, _ []string) {
	outputFile, err := cmd.Flags().GetString("out")
	if err != nil {
		commandHandler.logger.Error("invalid out flag: %v", err)
		return
	}

	sample := payment.PaymentPayload{
		CardNumber: "4111111111111111",
		Expiry:     "12/30",
		CVV:        "123",
		FullName:   "Jane Doe",
		Email:      "jane@example.com",
		Amount:     99.50,
	}

	data, err := json.MarshalIndent(&sample, "", "  ")
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	if outputFile == "" {
		fmt.Println(string(data))
		return
	}

	err = os.WriteFile(outputFile, data, 0600)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Sample payload path ", outputFile)
}

// InitIntakeCommands registers the intake-related commands
func InitIntakeCommands(rootCmd *cobra.Command) error {
	handler, err := NewIntakeCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create intake command handler %w", err)
	}

	var keygenCmd = &cobra.Command{
		Use:   "keygen",
		Short: "Generate and persist an RSA key pair",
		Run:   handler.KeygenCmd,
	}
	keygenCmd.Flags().IntP("key-size", "", 2048, "RSA key size (default 2048 bits for RSA-2048)")
	keygenCmd.Flags().StringP("key-dir", "", "", "Directory to store the RSA keys")
	rootCmd.AddCommand(keygenCmd)

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a payment payload into a base64 submission body",
		Run:   handler.EncryptCmd,
	}
	encryptCmd.Flags().StringP("payload-file", "", "", "Path to JSON payload file which needs to be encrypted")
	encryptCmd.Flags().StringP("public-key", "", "", "Path to RSA public key")
	encryptCmd.Flags().StringP("output-file", "", "", "Path to ciphertext output file (stdout when omitted)")
	rootCmd.AddCommand(encryptCmd)

	var payloadCmd = &cobra.Command{
		Use:   "payload",
		Short: "Write a sample payment payload",
		Run:   handler.PayloadCmd,
	}
	payloadCmd.Flags().StringP("out", "", "", "Path to payload output file (stdout when omitted)")
	rootCmd.AddCommand(payloadCmd)

	return nil
}
