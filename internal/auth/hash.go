// Package auth provides password hashing and token handling.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/crypto/argon2"
)

const (
	// Sensible defaults for a self-hosted app on a local network, not Fort Knox.
	argon2Memory      = 64 * 1024
	argon2Iterations  = 3
	argon2Parallelism = 4
	argon2SaltLength  = 16
	argon2KeyLength   = 32

	// Prevent massive passwords from consuming CPU/memory during hashing.
	maxPasswordLength = 1024

	argon2Prefix = "$argon2id$"
)

// HashPassword creates an Argon2id hash of the password.
// It returns a formatted string, or an error.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	if len(password) > maxPasswordLength {
		return "", errors.New("password exceeds maximum length")
	}

	salt := make([]byte, argon2SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		argon2Iterations,
		argon2Memory,
		argon2Parallelism,
		argon2KeyLength,
	)

	saltB64 := base64.RawStdEncoding.EncodeToString(salt)
	hashB64 := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argon2Memory,
		argon2Iterations,
		argon2Parallelism,
		saltB64,
		hashB64,
	)

	return encoded, nil
}

// LegacyHash reproduces the rolling hash used by the original browser client
// so accounts carried over from it can still log in. The accumulation is
// h = h*31 + c over UTF-16 code units with 32-bit signed wraparound, rendered
// as lowercase hex of the signed value ("-" prefix when negative).
//
// This is not a password hash in any meaningful sense. It exists only for
// verification compatibility; stored legacy hashes are upgraded to Argon2id
// on the next successful login.
func LegacyHash(password string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(password)) {
		h = (h << 5) - h + int32(c)
	}
	if h < 0 {
		return "-" + strconv.FormatInt(-int64(h), 16)
	}
	return strconv.FormatInt(int64(h), 16)
}

// IsLegacyHash reports whether a stored hash uses the legacy format.
// Callers should rehash with HashPassword after a successful verification.
func IsLegacyHash(encodedHash string) bool {
	return !strings.HasPrefix(encodedHash, argon2Prefix)
}

// VerifyPassword verifies a password against a stored hash, dispatching on
// the hash format. Legacy hashes are compared in constant time; Argon2id
// hashes are recomputed with the encoded parameters.
func VerifyPassword(encodedHash, password string) (bool, error) {
	// Validate password length before doing expensive hashing.
	if len(password) > maxPasswordLength {
		return false, nil
	}

	if IsLegacyHash(encodedHash) {
		computed := LegacyHash(password)
		return subtle.ConstantTimeCompare([]byte(encodedHash), []byte(computed)) == 1, nil
	}

	salt, hash, params, err := decodeHash(encodedHash)
	if err != nil {
		// Return false rather than leaking hash validation details.
		//nolint:nilerr // Intentional
		return false, nil
	}

	testHash := argon2.IDKey(
		[]byte(password),
		salt,
		params.iterations,
		params.memory,
		params.parallelism,
		params.keyLength,
	)

	if subtle.ConstantTimeCompare(hash, testHash) == 1 {
		return true, nil
	}

	return false, nil
}

// argon2Params holds the parameters extracted from an encoded hash.
type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	keyLength   uint32
}

// decodeHash extracts salt, hash and parameters from encoded string, or errors if it can't.
func decodeHash(encodedHash string) (salt, hash []byte, params *argon2Params, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, errors.New("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("unsupported algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid version: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, nil, fmt.Errorf("incompatible version: %d", version)
	}

	params = &argon2Params{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.iterations, &params.parallelism); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid parameters: %w", err)
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid salt encoding: %w", err)
	}

	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid hash encoding: %w", err)
	}

	//nolint:gosec // Hash length is always 32 bytes (argon2KeyLength), safe to convert
	params.keyLength = uint32(len(hash))

	return salt, hash, params, nil
}
