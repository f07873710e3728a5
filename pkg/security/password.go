// Package security hashes shopper passwords with Argon2id.
package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"

	"github.com/angelmondragon/storefront/pkg/config"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

var (
	ErrInvalidHash  = errors.New("invalid argon2id hash")
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
)

var b64 = base64.RawStdEncoding

// Params are the Argon2id cost settings. They are encoded into every hash
// so a hash keeps verifying after the settings change.
type Params struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLen     uint32
	KeyLen      uint32
}

// ParamsFromConfig clamps configured costs into a sane range.
func ParamsFromConfig(cfg config.PasswordConfig) Params {
	return Params{
		Memory:      uint32(clamp(cfg.ArgonMemoryKB, 8, 512*1024)),
		Time:        uint32(clamp(cfg.ArgonTime, 1, 10)),
		Parallelism: uint8(clamp(cfg.ArgonParallelism, 1, 255)),
		SaltLen:     uint32(clamp(cfg.ArgonSaltLen, 8, 64)),
		KeyLen:      uint32(clamp(cfg.ArgonKeyLen, 16, 64)),
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// Hasher hashes new passwords with its current Params.
type Hasher struct {
	params Params
}

func NewHasher(cfg config.PasswordConfig) *Hasher {
	return &Hasher{params: ParamsFromConfig(cfg)}
}

// Hash returns $argon2id$v=19$m=..,t=..,p=..$<salt>$<key>.
func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	p := h.params
	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Parallelism, b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// Verify checks password against encoded. rehash is true when the password
// matched but encoded was produced with different Params than h uses now.
func (h *Hasher) Verify(password, encoded string) (ok, rehash bool, err error) {
	stored, salt, key, err := decode(encoded)
	if err != nil {
		return false, false, err
	}
	computed := argon2.IDKey([]byte(password), salt, stored.Time, stored.Memory, stored.Parallelism, stored.KeyLen)
	if subtle.ConstantTimeCompare(key, computed) != 1 {
		return false, false, nil
	}
	return true, stored != h.params, nil
}

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrInvalidHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, ErrInvalidHash
	}
	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Parallelism); err != nil {
		return Params{}, nil, nil, ErrInvalidHash
	}
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return Params{}, nil, nil, ErrInvalidHash
	}
	p.SaltLen, p.KeyLen = uint32(len(salt)), uint32(len(key))
	return p, salt, key, nil
}

// CheckPasswordPolicy enforces the sign-up password rules.
func CheckPasswordPolicy(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength || strings.TrimSpace(password) == "" {
		return ErrWeakPassword
	}
	return nil
}
