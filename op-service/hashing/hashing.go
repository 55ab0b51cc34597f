// Package hashing provides the Keccak-256 primitives every bridge commitment is built on.
package hashing

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Keccak256 hashes the concatenation of data with the legacy (pre-NIST) Keccak-256 function.
func Keccak256(data ...[]byte) common.Hash {
	return crypto.Keccak256Hash(data...)
}

// DomainHash computes keccak256(tag ++ data). The tag keeps digests of
// identical payloads from different namespaces apart.
func DomainHash(tag common.Hash, data []byte) common.Hash {
	return Keccak256(tag[:], data)
}

// DomainTag left-pads a numeric domain identifier to a 32 byte tag.
func DomainTag(domain uint64) (tag common.Hash) {
	binary.BigEndian.PutUint64(tag[24:], domain)
	return tag
}
