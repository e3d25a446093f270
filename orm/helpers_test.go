package orm

import (
	"encoding/binary"

	"github.com/iov-one/solquad/errors"
)

// Counter is a model used by the tests of this package.
type Counter struct {
	Count int64  `json:"count"`
	Group []byte `json:"group"`
}

var _ Model = (*Counter)(nil)

func (c *Counter) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Counter) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Counter) Copy() CloneableData {
	cpy := *c
	return &cpy
}

func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInput, "negative count")
	}
	return nil
}

func counterGroup(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	return c.Group, nil
}

func counterValue(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*Counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(c.Count))
	return b, nil
}
