package walletloader

import (
	"os"
	"path/filepath"
	"testing"

	"solana_portfolio/internal/pkg/logger"
)

func TestWalletFileLoader_SkipsCommentsBlanksAndInvalidLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.txt")
	content := "# my wallets\n\n" +
		"So11111111111111111111111111111111111111112\n" +
		"   Vote111111111111111111111111111111111111111   \n" +
		"0x742d35Cc6634C0532925a3b844Bc454e4438f44e\n" +
		"not an address\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write wallets: %v", err)
	}

	got, err := NewWalletFileLoader(path, logger.NewNop()).GetWallets()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"So11111111111111111111111111111111111111112",
		"Vote111111111111111111111111111111111111111",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("wallet %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestWalletFileLoader_MissingFile(t *testing.T) {
	l := NewWalletFileLoader(filepath.Join(t.TempDir(), "absent.txt"), logger.NewNop())
	if _, err := l.GetWallets(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
