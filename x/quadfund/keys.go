package quadfund

import (
	"encoding/binary"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
)

const (
	keyExtension = "qfund"

	escrowTag  = "escrow"
	poolTag    = "pool"
	projectTag = "project"
)

// derive maps a tag and an ordered list of identities onto an address.
// Every identity is length prefixed, which keeps the mapping injective.
func derive(tag string, ids ...[]byte) weave.Address {
	var data []byte
	buf := make([]byte, binary.MaxVarintLen64)
	for _, id := range ids {
		n := binary.PutUvarint(buf, uint64(len(id)))
		data = append(data, buf[:n]...)
		data = append(data, id...)
	}
	return weave.NewCondition(keyExtension, tag, data).Address()
}

// EscrowKey returns the key of the escrow owned by admin.
func EscrowKey(admin weave.Address) weave.Address {
	return derive(escrowTag, admin)
}

// PoolKey returns the key of the pool owned by admin.
func PoolKey(admin weave.Address) weave.Address {
	return derive(poolTag, admin)
}

// ProjectKey returns the key of the project of owner scoped to pool.
func ProjectKey(pool, owner weave.Address) weave.Address {
	return derive(projectTag, pool, owner)
}

func encodeAmount(n uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// DecodeAmount reads an amount returned by the distribution handlers.
func DecodeAmount(raw []byte) (uint64, error) {
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "amount must be 8 bytes, got %d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}
