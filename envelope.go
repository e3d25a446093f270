package weave

import (
	"fmt"
	"reflect"

	"github.com/iov-one/solquad/errors"
)

// Envelope carries a serialized message together with the path that
// identifies its type. Transactions and batches use it to transport any
// registered message.
type Envelope struct {
	Path string `protobuf:"bytes,1,opt,name=path,proto3" json:"path"`
	Data []byte `protobuf:"bytes,2,opt,name=data,proto3" json:"data"`
}

// msgTypes maps a message path to the concrete (non pointer) type of the
// message registered under it.
var msgTypes = make(map[string]reflect.Type)

// MustRegisterMsg registers the message type so that envelopes with its path
// can be opened. Call it from an init function; registering the same path
// twice panics.
func MustRegisterMsg(msg Msg) {
	path := msg.Path()
	if _, ok := msgTypes[path]; ok {
		panic(fmt.Sprintf("message path %q already registered", path))
	}
	t := reflect.TypeOf(msg)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("message %T must be registered as a pointer", msg))
	}
	msgTypes[path] = t.Elem()
}

// WrapMsg serializes given message into an envelope.
func WrapMsg(msg Msg) (*Envelope, error) {
	if msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "nil message")
	}
	if _, ok := msgTypes[msg.Path()]; !ok {
		return nil, errors.Wrapf(errors.ErrType, "message path %q not registered", msg.Path())
	}
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	return &Envelope{Path: msg.Path(), Data: raw}, nil
}

// Validate returns an error if the envelope does not reference a registered
// message.
func (e *Envelope) Validate() error {
	if e == nil {
		return errors.Wrap(errors.ErrMsg, "missing envelope")
	}
	if _, ok := msgTypes[e.Path]; !ok {
		return errors.Wrapf(errors.ErrType, "message path %q not registered", e.Path)
	}
	return nil
}

// Unwrap deserializes the message carried by the envelope.
func (e *Envelope) Unwrap() (Msg, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	msg := reflect.New(msgTypes[e.Path]).Interface().(Msg)
	if err := msg.Unmarshal(e.Data); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot decode %q: %s", e.Path, err)
	}
	return msg, nil
}
