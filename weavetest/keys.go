package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/crypto"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a unique condition. Conditions are not backed by a
// key, use NewKey when a signature is needed.
func NewCondition() weave.Condition {
	return weave.NewCondition("test", "seq", SequenceID(atomic.AddUint64(&seq, 1)))
}

var seq uint64

// SequenceID returns the big endian encoded value.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
