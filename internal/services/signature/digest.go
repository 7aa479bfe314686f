package signature

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// Domain separation prefixes keep transfer and delegate digests disjoint.
const (
	transferDomain = "VAULTGUARD_TRANSFER_V1"
	delegateDomain = "VAULTGUARD_DELEGATE_V1"
)

// TransferDigest is the canonical encoding of all transfer parameters plus
// the module nonce, hashed with Keccak-256. Signatures are computed over it.
func TransferDigest(wallet, asset, recipient string, amount *big.Int, gasLimit uint64, gasPrice *big.Int, refundAsset string, data []byte, nonce uint64) []byte {
	h := sha3.NewLegacyKeccak256()
	writeString(h, transferDomain)
	writeString(h, wallet)
	writeString(h, asset)
	writeString(h, recipient)
	writeBig(h, amount)
	writeUint64(h, gasLimit)
	writeBig(h, gasPrice)
	writeString(h, refundAsset)
	writeBytes(h, data)
	writeUint64(h, nonce)
	return h.Sum(nil)
}

// DelegateDigest binds a delegate update to the owning wallet and its
// wallet-level nonce.
func DelegateDigest(wallet, delegate string, nonce uint64) []byte {
	h := sha3.NewLegacyKeccak256()
	writeString(h, delegateDomain)
	writeString(h, wallet)
	writeString(h, delegate)
	writeUint64(h, nonce)
	return h.Sum(nil)
}

type hashWriter interface {
	Write(p []byte) (int, error)
}

func writeString(h hashWriter, s string) {
	writeBytes(h, []byte(s))
}

func writeBytes(h hashWriter, b []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(b)))
	h.Write(n[:])
	h.Write(b)
}

func writeUint64(h hashWriter, v uint64) {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], v)
	h.Write(n[:])
}

// writeBig writes a 32-byte big-endian representation. Nil is zero.
func writeBig(h hashWriter, v *big.Int) {
	var buf [32]byte
	if v != nil {
		v.FillBytes(buf[:])
	}
	h.Write(buf[:])
}
