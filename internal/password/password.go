package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dtroode/identity-server/internal/model"
)

var _ model.PasswordHasher = (*Hasher)(nil)

// params are stored inside the encoded hash so verification always uses the
// cost the hash was created with.
type params struct {
	time    uint32
	memory  uint32 // KiB
	threads uint8
	keyLen  uint32
	saltLen uint32
}

// Hasher derives argon2id hashes in the standard encoded form
// $argon2id$v=19$m=...,t=...,p=...$salt$hash.
type Hasher struct {
	cur params
}

// NewHasher creates a Hasher with the current cost policy.
func NewHasher() *Hasher {
	return &Hasher{
		cur: params{
			time:    3,
			memory:  64 * 1024,
			threads: 1,
			keyLen:  32,
			saltLen: 16,
		},
	}
}

// Hash derives a salted argon2id hash of the secret.
func (h *Hasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("empty secret")
	}

	salt := make([]byte, h.cur.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(secret), salt, h.cur.time, h.cur.memory, h.cur.threads, h.cur.keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.cur.memory, h.cur.time, h.cur.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify checks a secret against an encoded hash using the cost parameters
// embedded in it. The comparison is constant time.
func (h *Hasher) Verify(secret, encoded string) (bool, error) {
	if secret == "" || encoded == "" {
		return false, nil
	}

	stored, salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}

	calculated := argon2.IDKey([]byte(secret), salt, stored.time, stored.memory, stored.threads, uint32(len(key)))

	return subtle.ConstantTimeCompare(calculated, key) == 1, nil
}

func decode(encoded string) (params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return params{}, nil, nil, errors.New("malformed argon2id hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return params{}, nil, nil, fmt.Errorf("malformed argon2id version: %w", err)
	}
	if version != argon2.Version {
		return params{}, nil, nil, errors.New("unsupported argon2id version")
	}

	var p params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return params{}, nil, nil, fmt.Errorf("malformed argon2id params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return params{}, nil, nil, fmt.Errorf("malformed argon2id salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return params{}, nil, nil, fmt.Errorf("malformed argon2id key: %w", err)
	}

	return p, salt, key, nil
}
