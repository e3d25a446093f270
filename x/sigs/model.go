package sigs

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/crypto"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/orm"
)

// BucketName is where we store the accounts
const BucketName = "sigs"

// UserData is the replay protection state of a single public key.
type UserData struct {
	Metadata *weave.Metadata   `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Pubkey   *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey"`
	Sequence int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

// Validate returns an error if the user state is inconsistent.
func (u *UserData) Validate() error {
	if err := u.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if u.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if u.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "pubkey")
	}
	return nil
}

// Copy makes a new UserData with the same sequence
func (u *UserData) Copy() orm.CloneableData {
	return &UserData{
		Metadata: u.Metadata.Copy(),
		Sequence: u.Sequence,
		Pubkey:   u.Pubkey,
	}
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}

	// Clients cannot represent integers above 2^53 - 1.
	const maxSequenceValue = (1 << 53) - 1
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// NewBucket creates the proper bucket for this extension.
// Users are stored under the address of their public key.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// RegisterQuery will register this bucket as "/auth"
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// GetOrCreate loads the user of given key or returns a fresh one with
// sequence zero.
func GetOrCreate(db weave.ReadOnlyKVStore, b orm.ModelBucket, pubkey *crypto.PublicKey) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey.Address(), &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &weave.Metadata{Schema: 1},
			Pubkey:   pubkey,
		}, nil
	default:
		return nil, err
	}
}
