package sigs

import (
	"github.com/gogo/protobuf/proto"
)

type stdSignatureWire StdSignature

func (s *stdSignatureWire) Reset()         { *s = stdSignatureWire{} }
func (s *stdSignatureWire) String() string { return proto.CompactTextString(s) }
func (*stdSignatureWire) ProtoMessage()    {}

type userDataWire UserData

func (u *userDataWire) Reset()         { *u = userDataWire{} }
func (u *userDataWire) String() string { return proto.CompactTextString(u) }
func (*userDataWire) ProtoMessage()    {}

// Marshal serializes the signature.
func (s *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignatureWire)(s))
}

// Unmarshal loads the signature from its serialized form.
func (s *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignatureWire)(s))
}

// Marshal serializes the user state.
func (u *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userDataWire)(u))
}

// Unmarshal loads the user state from its serialized form.
func (u *UserData) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*userDataWire)(u))
}
