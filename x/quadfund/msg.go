package quadfund

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
)

const (
	pathInitializeEscrowMsg       = "quadfund/initialize_escrow"
	pathFundEscrowMsg             = "quadfund/fund_escrow"
	pathInitializePoolMsg         = "quadfund/initialize_pool"
	pathInitializeProjectMsg      = "quadfund/initialize_project"
	pathAddProjectToPoolMsg       = "quadfund/add_project_to_pool"
	pathVoteForProjectMsg         = "quadfund/vote_for_project"
	pathDistributeEscrowAmountMsg = "quadfund/distribute_escrow_amount"
	pathDistributeRoundMsg        = "quadfund/distribute_round"
)

func init() {
	weave.MustRegisterMsg(&InitializeEscrowMsg{})
	weave.MustRegisterMsg(&FundEscrowMsg{})
	weave.MustRegisterMsg(&InitializePoolMsg{})
	weave.MustRegisterMsg(&InitializeProjectMsg{})
	weave.MustRegisterMsg(&AddProjectToPoolMsg{})
	weave.MustRegisterMsg(&VoteForProjectMsg{})
	weave.MustRegisterMsg(&DistributeEscrowAmountMsg{})
	weave.MustRegisterMsg(&DistributeRoundMsg{})
}

// InitializeEscrowMsg creates the escrow of an administrator with an
// initial balance.
type InitializeEscrowMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
	Amount   uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

var _ weave.Msg = (*InitializeEscrowMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (InitializeEscrowMsg) Path() string {
	return pathInitializeEscrowMsg
}

// Validate makes sure that this is sensible
func (m *InitializeEscrowMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

// FundEscrowMsg deposits an additional amount into an existing escrow.
type FundEscrowMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
	Amount   uint64          `protobuf:"varint,3,opt,name=amount,proto3" json:"amount"`
}

var _ weave.Msg = (*FundEscrowMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (FundEscrowMsg) Path() string {
	return pathFundEscrowMsg
}

// Validate makes sure that this is sensible
func (m *FundEscrowMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	return nil
}

// InitializePoolMsg creates an empty pool of an administrator.
type InitializePoolMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
}

var _ weave.Msg = (*InitializePoolMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (InitializePoolMsg) Path() string {
	return pathInitializePoolMsg
}

// Validate makes sure that this is sensible
func (m *InitializePoolMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

// InitializeProjectMsg creates an unregistered project of an owner, scoped
// to the given pool.
type InitializeProjectMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
	Pool     weave.Address   `protobuf:"bytes,3,opt,name=pool,proto3" json:"pool"`
	Name     string          `protobuf:"bytes,4,opt,name=name,proto3" json:"name"`
}

var _ weave.Msg = (*InitializeProjectMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (InitializeProjectMsg) Path() string {
	return pathInitializeProjectMsg
}

// Validate makes sure that this is sensible
func (m *InitializeProjectMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := m.Pool.Validate(); err != nil {
		return errors.Wrap(err, "pool")
	}
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

// AddProjectToPoolMsg registers a project into the pool of the
// administrator.
type AddProjectToPoolMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
	Project  weave.Address   `protobuf:"bytes,3,opt,name=project,proto3" json:"project"`
}

var _ weave.Msg = (*AddProjectToPoolMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (AddProjectToPoolMsg) Path() string {
	return pathAddProjectToPoolMsg
}

// Validate makes sure that this is sensible
func (m *AddProjectToPoolMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	return nil
}

// VoteForProjectMsg adds weight to a project registered in the pool of the
// administrator.
type VoteForProjectMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
	Project  weave.Address   `protobuf:"bytes,3,opt,name=project,proto3" json:"project"`
	Weight   uint64          `protobuf:"varint,4,opt,name=weight,proto3" json:"weight"`
}

var _ weave.Msg = (*VoteForProjectMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (VoteForProjectMsg) Path() string {
	return pathVoteForProjectMsg
}

// Validate makes sure that this is sensible
func (m *VoteForProjectMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	return nil
}

// DistributeEscrowAmountMsg pays a single project its share of the escrow.
type DistributeEscrowAmountMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
	Project  weave.Address   `protobuf:"bytes,3,opt,name=project,proto3" json:"project"`
}

var _ weave.Msg = (*DistributeEscrowAmountMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (DistributeEscrowAmountMsg) Path() string {
	return pathDistributeEscrowAmountMsg
}

// Validate makes sure that this is sensible
func (m *DistributeEscrowAmountMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	if err := m.Project.Validate(); err != nil {
		return errors.Wrap(err, "project")
	}
	return nil
}

// DistributeRoundMsg pays every project of the administrator's pool its
// share of the escrow, computed against a single snapshot.
type DistributeRoundMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
}

var _ weave.Msg = (*DistributeRoundMsg)(nil)

// Path fulfills weave.Msg interface to allow routing
func (DistributeRoundMsg) Path() string {
	return pathDistributeRoundMsg
}

// Validate makes sure that this is sensible
func (m *DistributeRoundMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}
