package quadfund

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/orm"
)

// Escrow holds the funds of an administrator that are distributed to the
// projects of the administrator's pool.
type Escrow struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
	Balance  uint64          `protobuf:"varint,3,opt,name=balance,proto3" json:"balance"`
}

var _ orm.Model = (*Escrow)(nil)

// Validate ensures the escrow is valid.
func (m *Escrow) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

// Copy returns a deep copy.
func (m *Escrow) Copy() orm.CloneableData {
	return &Escrow{
		Metadata: m.Metadata.Copy(),
		Admin:    m.Admin.Clone(),
		Balance:  m.Balance,
	}
}

// Pool groups the projects of an administrator together with the total
// weight of all votes cast on them.
type Pool struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Admin    weave.Address   `protobuf:"bytes,2,opt,name=admin,proto3" json:"admin"`
	// Projects are kept in registration order.
	Projects    []weave.Address `protobuf:"bytes,3,rep,name=projects" json:"projects"`
	TotalWeight uint64          `protobuf:"varint,4,opt,name=total_weight,proto3" json:"total_weight"`
}

var _ orm.Model = (*Pool)(nil)

// Validate ensures the pool is valid.
func (m *Pool) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	for i, p := range m.Projects {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "project %d", i)
		}
		for _, prev := range m.Projects[:i] {
			if prev.Equals(p) {
				return errors.Wrapf(ErrDuplicateProject, "project %d", i)
			}
		}
	}
	return nil
}

// Copy returns a deep copy.
func (m *Pool) Copy() orm.CloneableData {
	projects := make([]weave.Address, len(m.Projects))
	for i, p := range m.Projects {
		projects[i] = p.Clone()
	}
	return &Pool{
		Metadata:    m.Metadata.Copy(),
		Admin:       m.Admin.Clone(),
		Projects:    projects,
		TotalWeight: m.TotalWeight,
	}
}

// HasProject returns true if given project is registered in this pool.
func (m *Pool) HasProject(key weave.Address) bool {
	for _, p := range m.Projects {
		if p.Equals(key) {
			return true
		}
	}
	return false
}

// Project is a funding candidate. Pool is unset until the project is
// registered and never changes afterwards.
type Project struct {
	Metadata          *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	Owner             weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
	Name              string          `protobuf:"bytes,3,opt,name=name,proto3" json:"name"`
	Pool              weave.Address   `protobuf:"bytes,4,opt,name=pool,proto3" json:"pool,omitempty"`
	Weight            uint64          `protobuf:"varint,5,opt,name=weight,proto3" json:"weight"`
	DistributedAmount uint64          `protobuf:"varint,6,opt,name=distributed_amount,proto3" json:"distributed_amount"`
}

var _ orm.Model = (*Project)(nil)

// Validate ensures the project is valid.
func (m *Project) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	if m.IsRegistered() {
		if err := m.Pool.Validate(); err != nil {
			return errors.Wrap(err, "pool")
		}
	}
	return nil
}

// Copy returns a deep copy.
func (m *Project) Copy() orm.CloneableData {
	return &Project{
		Metadata:          m.Metadata.Copy(),
		Owner:             m.Owner.Clone(),
		Name:              m.Name,
		Pool:              m.Pool.Clone(),
		Weight:            m.Weight,
		DistributedAmount: m.DistributedAmount,
	}
}

// IsRegistered returns true if the project belongs to a pool.
func (m *Project) IsRegistered() bool {
	return len(m.Pool) != 0
}

// NewEscrowBucket returns a bucket for storing escrows.
func NewEscrowBucket() orm.ModelBucket {
	return orm.NewModelBucket("escrow", &Escrow{})
}

// NewPoolBucket returns a bucket for storing pools.
func NewPoolBucket() orm.ModelBucket {
	return orm.NewModelBucket("pool", &Pool{})
}

// NewProjectBucket returns a bucket for storing projects. Projects are
// indexed by the pool they are registered in.
func NewProjectBucket() orm.ModelBucket {
	return orm.NewModelBucket("project", &Project{},
		orm.WithIndex("pool", projectPoolIndexer, false),
	)
}

func projectPoolIndexer(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	p, ok := obj.Value().(*Project)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", obj.Value())
	}
	// Unregistered projects are not indexed.
	return p.Pool, nil
}
