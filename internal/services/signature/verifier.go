// Package signature validates threshold signatures over canonical
// transaction digests. A signature blob carries the signer's Ed25519 public
// key followed by the signature; the signer identity is the hex address
// derived from the Keccak-256 hash of the public key.
package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

const (
	// AddressLength is the byte length of a signer address.
	AddressLength = 20

	// BlobSize is the length of one signature blob: 32-byte public key
	// followed by a 64-byte Ed25519 signature.
	BlobSize = ed25519.PublicKeySize + ed25519.SignatureSize
)

// SignerAddress derives the hex address of an Ed25519 public key: the last
// 20 bytes of its Keccak-256 hash, 0x-prefixed.
func SignerAddress(pub ed25519.PublicKey) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub)
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[len(sum)-AddressLength:])
}

// Sign produces a signature blob (public key || signature) over digest.
func Sign(priv ed25519.PrivateKey, digest []byte) []byte {
	blob := make([]byte, 0, BlobSize)
	blob = append(blob, priv.Public().(ed25519.PublicKey)...)
	return append(blob, ed25519.Sign(priv, digest)...)
}

// Verifier checks threshold signatures against an authorized signer set.
// It holds no state.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier { return &Verifier{} }

// Verify checks that sigs contains at least threshold distinct, valid
// signatures over digest by addresses in the authorized set. Signatures must
// be sorted ascending by signer address with no duplicates. No side effects.
func (v *Verifier) Verify(digest []byte, sigs [][]byte, authorized []string, threshold int) error {
	allowed := make(map[string]struct{}, len(authorized))
	for _, a := range authorized {
		allowed[strings.ToLower(a)] = struct{}{}
	}

	count := 0
	last := ""
	for i, blob := range sigs {
		if len(blob) != BlobSize {
			return fmt.Errorf("%w: entry %d has %d bytes", ErrMalformedSignature, i, len(blob))
		}
		pub := ed25519.PublicKey(blob[:ed25519.PublicKeySize])
		sig := blob[ed25519.PublicKeySize:]
		if !ed25519.Verify(pub, digest, sig) {
			return fmt.Errorf("%w: entry %d", ErrInvalidSignature, i)
		}
		addr := SignerAddress(pub)
		if last != "" && addr <= last {
			return ErrInvalidSignatureOrder
		}
		if _, ok := allowed[addr]; !ok {
			return fmt.Errorf("%w: %s", ErrUnauthorizedSigner, addr)
		}
		last = addr
		count++
	}

	if count < threshold {
		return fmt.Errorf("%w: have %d, need %d", ErrThresholdNotMet, count, threshold)
	}
	return nil
}
