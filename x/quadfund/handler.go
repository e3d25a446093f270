package quadfund

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/x"
)

const (
	initializeEscrowCost  int64 = 100
	fundEscrowCost        int64 = 10
	initializePoolCost    int64 = 100
	initializeProjectCost int64 = 100
	addProjectToPoolCost  int64 = 50
	voteForProjectCost    int64 = 10
	distributeCost        int64 = 20
	// distributeRoundCost is charged per project of the pool.
	distributeRoundCost int64 = 20
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator) {
	ctrl := NewController()
	r.Handle(pathInitializeEscrowMsg, InitializeEscrowHandler{auth, ctrl})
	r.Handle(pathFundEscrowMsg, FundEscrowHandler{auth, ctrl})
	r.Handle(pathInitializePoolMsg, InitializePoolHandler{auth, ctrl})
	r.Handle(pathInitializeProjectMsg, InitializeProjectHandler{auth, ctrl})
	r.Handle(pathAddProjectToPoolMsg, AddProjectToPoolHandler{auth, ctrl})
	r.Handle(pathVoteForProjectMsg, VoteForProjectHandler{auth, ctrl})
	r.Handle(pathDistributeEscrowAmountMsg, DistributeEscrowAmountHandler{auth, ctrl})
	r.Handle(pathDistributeRoundMsg, DistributeRoundHandler{auth, ctrl})
}

// RegisterQuery exposes the buckets as "/escrows", "/pools" and
// "/projects".
func RegisterQuery(qr weave.QueryRouter) {
	NewEscrowBucket().Register("escrows", qr)
	NewPoolBucket().Register("pools", qr)
	NewProjectBucket().Register("projects", qr)
}

// InitializeEscrowHandler creates the escrow of the signing administrator.
type InitializeEscrowHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = InitializeEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h InitializeEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initializeEscrowCost}, nil
}

// Deliver stores a new escrow. The escrow key is returned as data.
func (h InitializeEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	key, _, err := h.ctrl.InitializeEscrow(db, msg.Admin, msg.Amount)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("escrow initialized", "escrow", key, "balance", msg.Amount)
	return &weave.DeliverResult{Data: key, GasUsed: initializeEscrowCost}, nil
}

func (h InitializeEscrowHandler) validate(ctx weave.Context, tx weave.Tx) (*InitializeEscrowMsg, error) {
	var msg InitializeEscrowMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, nil
}

// FundEscrowHandler increases the balance of an existing escrow.
type FundEscrowHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = FundEscrowHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h FundEscrowHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: fundEscrowCost}, nil
}

// Deliver adds the amount to the escrow balance.
func (h FundEscrowHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	escrow, err := h.ctrl.FundEscrow(db, msg.Admin, msg.Amount)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("escrow funded", "admin", msg.Admin, "balance", escrow.Balance)
	return &weave.DeliverResult{GasUsed: fundEscrowCost}, nil
}

func (h FundEscrowHandler) validate(ctx weave.Context, tx weave.Tx) (*FundEscrowMsg, error) {
	var msg FundEscrowMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, nil
}

// InitializePoolHandler creates the pool of the signing administrator.
type InitializePoolHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = InitializePoolHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h InitializePoolHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initializePoolCost}, nil
}

// Deliver stores a new, empty pool. The pool key is returned as data.
func (h InitializePoolHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	key, _, err := h.ctrl.InitializePool(db, msg.Admin)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("pool initialized", "pool", key)
	return &weave.DeliverResult{Data: key, GasUsed: initializePoolCost}, nil
}

func (h InitializePoolHandler) validate(ctx weave.Context, tx weave.Tx) (*InitializePoolMsg, error) {
	var msg InitializePoolMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, nil
}

// InitializeProjectHandler creates an unregistered project of the signing
// owner.
type InitializeProjectHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = InitializeProjectHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h InitializeProjectHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: initializeProjectCost}, nil
}

// Deliver stores a new project. The project key is returned as data.
func (h InitializeProjectHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, _, err := h.ctrl.InitializeProject(db, msg.Owner, msg.Pool, msg.Name)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("project initialized", "project", key, "name", msg.Name)
	return &weave.DeliverResult{Data: key, GasUsed: initializeProjectCost}, nil
}

func (h InitializeProjectHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*InitializeProjectMsg, error) {
	var msg InitializeProjectMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if n := len(msg.Name); n > int(conf.MaxNameLength) {
		return nil, errors.Wrapf(errors.ErrInput, "name too long, %d > %d", n, conf.MaxNameLength)
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	return &msg, nil
}

// AddProjectToPoolHandler registers a project into the pool of the signing
// administrator.
type AddProjectToPoolHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = AddProjectToPoolHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h AddProjectToPoolHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: addProjectToPoolCost}, nil
}

// Deliver registers the project. The key of the registered project is
// returned as data.
func (h AddProjectToPoolHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	key, project, err := h.ctrl.AddProjectToPool(db, msg.Admin, msg.Project, conf.MaxProjects)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("project registered",
		"project", key,
		"pool", project.Pool,
		"rescoped", !key.Equals(msg.Project))
	return &weave.DeliverResult{Data: key, GasUsed: addProjectToPoolCost}, nil
}

func (h AddProjectToPoolHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*AddProjectToPoolMsg, *Configuration, error) {
	var msg AddProjectToPoolMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}

// VoteForProjectHandler adds weight to a registered project.
type VoteForProjectHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = VoteForProjectHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h VoteForProjectHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: voteForProjectCost}, nil
}

// Deliver applies the vote to the project and its pool.
func (h VoteForProjectHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	project, pool, err := h.ctrl.VoteForProject(db, msg.Admin, msg.Project, msg.Weight)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Debug("vote accepted",
		"project", msg.Project,
		"weight", project.Weight,
		"total_weight", pool.TotalWeight)
	return &weave.DeliverResult{GasUsed: voteForProjectCost}, nil
}

func (h VoteForProjectHandler) validate(ctx weave.Context, tx weave.Tx) (*VoteForProjectMsg, error) {
	var msg VoteForProjectMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, nil
}

// DistributeEscrowAmountHandler pays a single project its share.
type DistributeEscrowAmountHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = DistributeEscrowAmountHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DistributeEscrowAmountHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: distributeCost}, nil
}

// Deliver pays the project. The paid amount is returned as data, big
// endian encoded.
func (h DistributeEscrowAmountHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	share, err := h.ctrl.DistributeEscrowAmount(db, msg.Admin, msg.Project)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("escrow distributed", "project", msg.Project, "amount", share)
	return &weave.DeliverResult{Data: encodeAmount(share), GasUsed: distributeCost}, nil
}

func (h DistributeEscrowAmountHandler) validate(ctx weave.Context, tx weave.Tx) (*DistributeEscrowAmountMsg, error) {
	var msg DistributeEscrowAmountMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	return &msg, nil
}

// DistributeRoundHandler pays every project of a pool in a single round.
type DistributeRoundHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = DistributeRoundHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h DistributeRoundHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	_, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	// The pool may be created by an earlier message of the same batch, so
	// the allocation covers the largest pool allowed.
	return &weave.CheckResult{GasAllocated: distributeRoundCost * int64(conf.MaxProjects)}, nil
}

// Deliver pays all projects. The total paid amount is returned as data,
// big endian encoded.
func (h DistributeRoundHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	total, paid, err := h.ctrl.DistributeRound(db, msg.Admin)
	if err != nil {
		return nil, err
	}
	weave.GetLogger(ctx).Info("distribution round",
		"pool", PoolKey(msg.Admin),
		"projects", paid,
		"amount", total)
	return &weave.DeliverResult{
		Data:    encodeAmount(total),
		GasUsed: distributeRoundCost * int64(paid),
	}, nil
}

func (h DistributeRoundHandler) validate(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*DistributeRoundMsg, *Configuration, error) {
	var msg DistributeRoundMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Admin) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "admin signature required")
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	return &msg, conf, nil
}
