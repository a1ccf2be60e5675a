package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"solana_portfolio/internal/app/port"

	"github.com/gagliardetto/solana-go"
)

// DefaultWalletFilePath is read when no path is given.
const DefaultWalletFilePath = "data/wallets.txt"

// WalletFileLoader implements the port.WalletProvider interface by loading wallets from a file.
type WalletFileLoader struct {
	filePath string
	logger   port.Logger
}

// NewWalletFileLoader creates a new WalletFileLoader.
func NewWalletFileLoader(filePath string, log port.Logger) port.WalletProvider {
	if filePath == "" {
		filePath = DefaultWalletFilePath
	}
	return &WalletFileLoader{
		filePath: filePath,
		logger:   log,
	}
}

// GetWallets reads one base58 address per line. Blank lines and lines starting
// with '#' are ignored; anything that is not a valid public key is skipped.
func (l *WalletFileLoader) GetWallets() ([]string, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []string
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := solana.PublicKeyFromBase58(line); err != nil {
			l.logger.Warn("Skipping invalid wallet address", "file", l.filePath, "line_number", lineNum, "address", line)
			continue
		}
		wallets = append(wallets, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	l.logger.Info("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	return wallets, nil
}
