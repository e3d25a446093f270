package quadfund

import (
	"github.com/gogo/protobuf/proto"
)

// Each persisted or transmitted type has a wire twin that carries no methods
// of its own, so that proto marshals it by its field tags instead of
// calling back into Marshal.

type (
	escrowWire                    Escrow
	poolWire                      Pool
	projectWire                   Project
	configurationWire             Configuration
	initializeEscrowMsgWire       InitializeEscrowMsg
	fundEscrowMsgWire             FundEscrowMsg
	initializePoolMsgWire         InitializePoolMsg
	initializeProjectMsgWire      InitializeProjectMsg
	addProjectToPoolMsgWire       AddProjectToPoolMsg
	voteForProjectMsgWire         VoteForProjectMsg
	distributeEscrowAmountMsgWire DistributeEscrowAmountMsg
	distributeRoundMsgWire        DistributeRoundMsg
)

func (m *escrowWire) Reset()         { *m = escrowWire{} }
func (m *escrowWire) String() string { return proto.CompactTextString(m) }
func (*escrowWire) ProtoMessage()    {}

func (m *poolWire) Reset()         { *m = poolWire{} }
func (m *poolWire) String() string { return proto.CompactTextString(m) }
func (*poolWire) ProtoMessage()    {}

func (m *projectWire) Reset()         { *m = projectWire{} }
func (m *projectWire) String() string { return proto.CompactTextString(m) }
func (*projectWire) ProtoMessage()    {}

func (m *configurationWire) Reset()         { *m = configurationWire{} }
func (m *configurationWire) String() string { return proto.CompactTextString(m) }
func (*configurationWire) ProtoMessage()    {}

func (m *initializeEscrowMsgWire) Reset()         { *m = initializeEscrowMsgWire{} }
func (m *initializeEscrowMsgWire) String() string { return proto.CompactTextString(m) }
func (*initializeEscrowMsgWire) ProtoMessage()    {}

func (m *fundEscrowMsgWire) Reset()         { *m = fundEscrowMsgWire{} }
func (m *fundEscrowMsgWire) String() string { return proto.CompactTextString(m) }
func (*fundEscrowMsgWire) ProtoMessage()    {}

func (m *initializePoolMsgWire) Reset()         { *m = initializePoolMsgWire{} }
func (m *initializePoolMsgWire) String() string { return proto.CompactTextString(m) }
func (*initializePoolMsgWire) ProtoMessage()    {}

func (m *initializeProjectMsgWire) Reset()         { *m = initializeProjectMsgWire{} }
func (m *initializeProjectMsgWire) String() string { return proto.CompactTextString(m) }
func (*initializeProjectMsgWire) ProtoMessage()    {}

func (m *addProjectToPoolMsgWire) Reset()         { *m = addProjectToPoolMsgWire{} }
func (m *addProjectToPoolMsgWire) String() string { return proto.CompactTextString(m) }
func (*addProjectToPoolMsgWire) ProtoMessage()    {}

func (m *voteForProjectMsgWire) Reset()         { *m = voteForProjectMsgWire{} }
func (m *voteForProjectMsgWire) String() string { return proto.CompactTextString(m) }
func (*voteForProjectMsgWire) ProtoMessage()    {}

func (m *distributeEscrowAmountMsgWire) Reset()         { *m = distributeEscrowAmountMsgWire{} }
func (m *distributeEscrowAmountMsgWire) String() string { return proto.CompactTextString(m) }
func (*distributeEscrowAmountMsgWire) ProtoMessage()    {}

func (m *distributeRoundMsgWire) Reset()         { *m = distributeRoundMsgWire{} }
func (m *distributeRoundMsgWire) String() string { return proto.CompactTextString(m) }
func (*distributeRoundMsgWire) ProtoMessage()    {}

func (m *Escrow) Marshal() ([]byte, error)        { return proto.Marshal((*escrowWire)(m)) }
func (m *Escrow) Unmarshal(raw []byte) error      { return proto.Unmarshal(raw, (*escrowWire)(m)) }
func (m *Pool) Marshal() ([]byte, error)          { return proto.Marshal((*poolWire)(m)) }
func (m *Pool) Unmarshal(raw []byte) error        { return proto.Unmarshal(raw, (*poolWire)(m)) }
func (m *Project) Marshal() ([]byte, error)       { return proto.Marshal((*projectWire)(m)) }
func (m *Project) Unmarshal(raw []byte) error     { return proto.Unmarshal(raw, (*projectWire)(m)) }
func (m *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationWire)(m)) }
func (m *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationWire)(m))
}
func (m *InitializeEscrowMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initializeEscrowMsgWire)(m))
}
func (m *InitializeEscrowMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*initializeEscrowMsgWire)(m))
}
func (m *FundEscrowMsg) Marshal() ([]byte, error) { return proto.Marshal((*fundEscrowMsgWire)(m)) }
func (m *FundEscrowMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*fundEscrowMsgWire)(m))
}
func (m *InitializePoolMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initializePoolMsgWire)(m))
}
func (m *InitializePoolMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*initializePoolMsgWire)(m))
}
func (m *InitializeProjectMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initializeProjectMsgWire)(m))
}
func (m *InitializeProjectMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*initializeProjectMsgWire)(m))
}
func (m *AddProjectToPoolMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*addProjectToPoolMsgWire)(m))
}
func (m *AddProjectToPoolMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*addProjectToPoolMsgWire)(m))
}
func (m *VoteForProjectMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*voteForProjectMsgWire)(m))
}
func (m *VoteForProjectMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*voteForProjectMsgWire)(m))
}
func (m *DistributeEscrowAmountMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*distributeEscrowAmountMsgWire)(m))
}
func (m *DistributeEscrowAmountMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*distributeEscrowAmountMsgWire)(m))
}
func (m *DistributeRoundMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*distributeRoundMsgWire)(m))
}
func (m *DistributeRoundMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*distributeRoundMsgWire)(m))
}
