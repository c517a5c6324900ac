package zenodo

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/cldfstats/cldfmeta-cli/internal/core/domain"
)

// ValidateChecksum validates data against a declared checksum of the form
// "algorithm:hex" (e.g. "md5:6f5902ac237024bdd0c176cb93063dc4").
func ValidateChecksum(checksum string, data []byte) error {
	algo, expected, found := strings.Cut(checksum, ":")
	if !found {
		return fmt.Errorf("%w: could not determine hashing algorithm in %q", domain.ErrInvalidInput, checksum)
	}

	var h hash.Hash
	switch algo {
	case "md5":
		h = md5.New()
	case "sha1":
		h = sha1.New()
	case "sha256":
		h = sha256.New()
	case "sha512":
		h = sha512.New()
	default:
		return fmt.Errorf("%w: unknown hashing algorithm %q", domain.ErrInvalidInput, algo)
	}

	h.Write(data)
	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		return fmt.Errorf("%w: expected %s sum %q, got %q", domain.ErrChecksumMismatch, algo, expected, actual)
	}
	return nil
}
