package app

import (
	"testing"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/crypto"
	"github.com/iov-one/solquad/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxRoundTrip(t *testing.T) {
	tx := &Tx{
		Signatures: []*sigs.StdSignature{
			{
				Sequence:  3,
				Pubkey:    &crypto.PublicKey{Ed25519: []byte("public-key-bytes")},
				Signature: &crypto.Signature{Ed25519: []byte("signature-bytes")},
			},
		},
		Msg: &weave.Envelope{Path: "quadfund/vote_for_project", Data: []byte{1, 2, 3}},
	}
	raw, err := tx.Marshal()
	require.NoError(t, err)
	// first field is the repeated, length delimited signature list
	assert.Equal(t, byte(0x0a), raw[0])

	var loaded Tx
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, tx, &loaded)

	signBytes, err := tx.GetSignBytes()
	require.NoError(t, err)
	// an unsigned transaction starts with the envelope field
	assert.Equal(t, byte(0x12), signBytes[0])
	assert.True(t, len(signBytes) < len(raw))
}

func TestResultSetRoundTrip(t *testing.T) {
	set := &ResultSet{Results: [][]byte{[]byte("a"), []byte("bc")}}
	raw, err := set.Marshal()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0x01, 'a', 0x0a, 0x02, 'b', 'c'}, raw)

	var loaded ResultSet
	require.NoError(t, loaded.Unmarshal(raw))
	assert.Equal(t, set, &loaded)
}
