package x

import "github.com/iov-one/solquad"

// Validater is any struct that can be validated.
type Validater interface {
	Validate() error
}

// MarshalValidater is something that can be validated and serialized
type MarshalValidater interface {
	weave.Marshaller
	Validater
}

// MustMarshal will succeed or panic
func MustMarshal(obj weave.Marshaller) []byte {
	bz, err := obj.Marshal()
	if err != nil {
		panic(err)
	}
	return bz
}

// MustUnmarshal will succeed or panic
func MustUnmarshal(obj weave.Persistent, bz []byte) {
	if err := obj.Unmarshal(bz); err != nil {
		panic(err)
	}
}

// MustMarshalValid marshals the object, but panics
// if the object is not valid or has trouble marshalling
func MustMarshalValid(obj MarshalValidater) []byte {
	if err := obj.Validate(); err != nil {
		panic(err)
	}
	return MustMarshal(obj)
}
