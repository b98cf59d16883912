package totp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const backupCodeLength = 8

// backupCodeAlphabet excludes visually ambiguous characters (0/O, 1/I).
const backupCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateBackupCodes returns a batch of recovery codes, pairwise distinct
// within the batch. Codes are returned in plaintext exactly once; callers
// store only their hashes.
func (e *Engine) GenerateBackupCodes(count int) ([]string, error) {
	codes := make([]string, 0, count)
	seen := make(map[string]struct{}, count)

	for len(codes) < count {
		code, err := generateBackupCode()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes, nil
}

func generateBackupCode() (string, error) {
	max := big.NewInt(int64(len(backupCodeAlphabet)))
	buf := make([]byte, backupCodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate backup code: %w", err)
		}
		buf[i] = backupCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
