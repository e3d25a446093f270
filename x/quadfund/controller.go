package quadfund

import (
	"math"
	"math/bits"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/orm"
)

// Controller implements the escrow, pool and project state transitions.
// Every method either applies all of its changes or returns an error
// before writing anything.
type Controller struct {
	escrows  orm.ModelBucket
	pools    orm.ModelBucket
	projects orm.ModelBucket
}

// NewController returns a controller operating on the default buckets.
func NewController() *Controller {
	return &Controller{
		escrows:  NewEscrowBucket(),
		pools:    NewPoolBucket(),
		projects: NewProjectBucket(),
	}
}

// InitializeEscrow creates the escrow of admin holding amount.
func (c *Controller) InitializeEscrow(db weave.KVStore, admin weave.Address, amount uint64) (weave.Address, *Escrow, error) {
	key := EscrowKey(admin)
	if err := c.mustNotExist(db, c.escrows, key); err != nil {
		return nil, nil, errors.Wrap(err, "escrow")
	}
	escrow := &Escrow{
		Metadata: &weave.Metadata{Schema: 1},
		Admin:    admin,
		Balance:  amount,
	}
	if err := c.escrows.Put(db, key, escrow); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store escrow")
	}
	return key, escrow, nil
}

// FundEscrow increases the balance of an existing escrow.
func (c *Controller) FundEscrow(db weave.KVStore, admin weave.Address, amount uint64) (*Escrow, error) {
	key := EscrowKey(admin)
	var escrow Escrow
	if err := c.escrows.One(db, key, &escrow); err != nil {
		return nil, errors.Wrap(err, "escrow")
	}
	if escrow.Balance > math.MaxUint64-amount {
		return nil, errors.Wrap(errors.ErrOverflow, "escrow balance")
	}
	escrow.Balance += amount
	if err := c.escrows.Put(db, key, &escrow); err != nil {
		return nil, errors.Wrap(err, "cannot store escrow")
	}
	return &escrow, nil
}

// InitializePool creates an empty pool of admin.
func (c *Controller) InitializePool(db weave.KVStore, admin weave.Address) (weave.Address, *Pool, error) {
	key := PoolKey(admin)
	if err := c.mustNotExist(db, c.pools, key); err != nil {
		return nil, nil, errors.Wrap(err, "pool")
	}
	pool := &Pool{
		Metadata: &weave.Metadata{Schema: 1},
		Admin:    admin,
	}
	if err := c.pools.Put(db, key, pool); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store pool")
	}
	return key, pool, nil
}

// InitializeProject creates an unregistered project of owner, scoped to the
// pool with the given key.
func (c *Controller) InitializeProject(db weave.KVStore, owner, pool weave.Address, name string) (weave.Address, *Project, error) {
	key := ProjectKey(pool, owner)
	if err := c.mustNotExist(db, c.projects, key); err != nil {
		return nil, nil, errors.Wrap(err, "project")
	}
	project := &Project{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    owner,
		Name:     name,
	}
	if err := c.projects.Put(db, key, project); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store project")
	}
	return key, project, nil
}

// AddProjectToPool registers the referenced project into the pool of
// admin. The escrow of admin must exist.
//
// A project is always registered under the key derived from the pool it
// joins. When the referenced project was derived for another pool, the
// record for this pool is used instead, created with the same name if
// missing. The referenced record is never modified in that case.
//
// The key of the registered project is returned.
func (c *Controller) AddProjectToPool(db weave.KVStore, admin, projectKey weave.Address, maxProjects uint32) (weave.Address, *Project, error) {
	poolKey := PoolKey(admin)
	var pool Pool
	if err := c.pools.One(db, poolKey, &pool); err != nil {
		return nil, nil, errors.Wrap(err, "pool")
	}
	if err := c.escrows.Has(db, EscrowKey(admin)); err != nil {
		return nil, nil, errors.Wrap(err, "escrow")
	}

	var ref Project
	if err := c.projects.One(db, projectKey, &ref); err != nil {
		return nil, nil, errors.Wrap(err, "project")
	}

	target := ProjectKey(poolKey, ref.Owner)
	project := &ref
	if !target.Equals(projectKey) {
		var scoped Project
		switch err := c.projects.One(db, target, &scoped); {
		case err == nil:
			project = &scoped
		case errors.ErrNotFound.Is(err):
			project = &Project{
				Metadata: &weave.Metadata{Schema: 1},
				Owner:    ref.Owner,
				Name:     ref.Name,
			}
		default:
			return nil, nil, errors.Wrap(err, "scoped project")
		}
	}

	if project.IsRegistered() || pool.HasProject(target) {
		return nil, nil, errors.Wrapf(ErrDuplicateProject, "project %s", target)
	}
	if maxProjects > 0 && uint32(len(pool.Projects)) >= maxProjects {
		return nil, nil, errors.Wrapf(errors.ErrState, "pool is full, %d projects allowed", maxProjects)
	}

	project.Pool = poolKey
	pool.Projects = append(pool.Projects, target)
	if err := c.projects.Put(db, target, project); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store project")
	}
	if err := c.pools.Put(db, poolKey, &pool); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store pool")
	}
	return target, project, nil
}

// VoteForProject adds weight to the project and to the total weight of the
// pool of admin. Both counters are updated or neither is.
func (c *Controller) VoteForProject(db weave.KVStore, admin, projectKey weave.Address, weight uint64) (*Project, *Pool, error) {
	poolKey, pool, project, err := c.loadRegistered(db, admin, projectKey)
	if err != nil {
		return nil, nil, err
	}
	if project.Weight > math.MaxUint64-weight {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "project weight")
	}
	if pool.TotalWeight > math.MaxUint64-weight {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "pool total weight")
	}
	project.Weight += weight
	pool.TotalWeight += weight

	if err := c.projects.Put(db, projectKey, project); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store project")
	}
	if err := c.pools.Put(db, poolKey, pool); err != nil {
		return nil, nil, errors.Wrap(err, "cannot store pool")
	}
	return project, pool, nil
}

// DistributeEscrowAmount pays the project its share of the current escrow
// balance and returns the amount paid.
func (c *Controller) DistributeEscrowAmount(db weave.KVStore, admin, projectKey weave.Address) (uint64, error) {
	_, pool, project, err := c.loadRegistered(db, admin, projectKey)
	if err != nil {
		return 0, err
	}
	escrowKey, escrow, err := c.loadFunded(db, admin, pool)
	if err != nil {
		return 0, err
	}

	share, err := Share(escrow.Balance, project.Weight, pool.TotalWeight)
	if err != nil {
		return 0, err
	}
	if err := pay(escrow, project, share); err != nil {
		return 0, err
	}

	if err := c.projects.Put(db, projectKey, project); err != nil {
		return 0, errors.Wrap(err, "cannot store project")
	}
	if err := c.escrows.Put(db, escrowKey, escrow); err != nil {
		return 0, errors.Wrap(err, "cannot store escrow")
	}
	return share, nil
}

// DistributeRound pays every project of the pool of admin its share of the
// escrow. All shares are computed against the balance and total weight
// observed before the first payment, so the result does not depend on the
// order of the projects. The undistributed remainder stays in the escrow.
// The total amount paid and the number of paid projects are returned.
func (c *Controller) DistributeRound(db weave.KVStore, admin weave.Address) (uint64, int, error) {
	var pool Pool
	if err := c.pools.One(db, PoolKey(admin), &pool); err != nil {
		return 0, 0, errors.Wrap(err, "pool")
	}
	escrowKey, escrow, err := c.loadFunded(db, admin, &pool)
	if err != nil {
		return 0, 0, err
	}

	balance := escrow.Balance
	projects := make([]*Project, len(pool.Projects))
	var total uint64
	for i, key := range pool.Projects {
		var p Project
		if err := c.projects.One(db, key, &p); err != nil {
			return 0, 0, errors.Wrapf(err, "project %s", key)
		}
		share, err := Share(balance, p.Weight, pool.TotalWeight)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "project %s", key)
		}
		if err := pay(escrow, &p, share); err != nil {
			return 0, 0, errors.Wrapf(err, "project %s", key)
		}
		projects[i] = &p
		total += share
	}

	for i, key := range pool.Projects {
		if err := c.projects.Put(db, key, projects[i]); err != nil {
			return 0, 0, errors.Wrap(err, "cannot store project")
		}
	}
	if err := c.escrows.Put(db, escrowKey, escrow); err != nil {
		return 0, 0, errors.Wrap(err, "cannot store escrow")
	}
	return total, len(projects), nil
}

// Share returns floor(balance * weight / total). The product is computed
// on 128 bits.
func Share(balance, weight, total uint64) (uint64, error) {
	if total == 0 {
		return 0, errors.Wrap(ErrNoVotes, "total weight is zero")
	}
	hi, lo := bits.Mul64(balance, weight)
	if hi >= total {
		return 0, errors.Wrap(errors.ErrOverflow, "share")
	}
	quo, _ := bits.Div64(hi, lo, total)
	return quo, nil
}

// pay moves share from the escrow balance to the distributed amount of the
// project.
func pay(escrow *Escrow, project *Project, share uint64) error {
	if share > escrow.Balance {
		return errors.Wrapf(ErrInsufficientEscrow, "share %d exceeds balance %d", share, escrow.Balance)
	}
	if project.DistributedAmount > math.MaxUint64-share {
		return errors.Wrap(errors.ErrOverflow, "distributed amount")
	}
	escrow.Balance -= share
	project.DistributedAmount += share
	return nil
}

// loadRegistered returns the pool of admin together with the referenced
// project, which must be registered into that pool.
func (c *Controller) loadRegistered(db weave.ReadOnlyKVStore, admin, projectKey weave.Address) (weave.Address, *Pool, *Project, error) {
	var project Project
	if err := c.projects.One(db, projectKey, &project); err != nil {
		return nil, nil, nil, errors.Wrap(err, "project")
	}
	poolKey := PoolKey(admin)
	if !project.Pool.Equals(poolKey) {
		return nil, nil, nil, errors.Wrapf(ErrNotRegistered, "project %s", projectKey)
	}
	var pool Pool
	if err := c.pools.One(db, poolKey, &pool); err != nil {
		return nil, nil, nil, errors.Wrap(err, "pool")
	}
	if !pool.HasProject(projectKey) {
		return nil, nil, nil, errors.Wrapf(ErrNotRegistered, "project %s", projectKey)
	}
	return poolKey, &pool, &project, nil
}

// loadFunded returns the escrow of admin after checking that there is
// anything to distribute.
func (c *Controller) loadFunded(db weave.ReadOnlyKVStore, admin weave.Address, pool *Pool) (weave.Address, *Escrow, error) {
	if pool.TotalWeight == 0 {
		return nil, nil, errors.Wrap(ErrNoVotes, "pool")
	}
	key := EscrowKey(admin)
	var escrow Escrow
	if err := c.escrows.One(db, key, &escrow); err != nil {
		return nil, nil, errors.Wrap(err, "escrow")
	}
	if escrow.Balance == 0 {
		return nil, nil, errors.Wrap(ErrInsufficientEscrow, "escrow is empty")
	}
	return key, &escrow, nil
}

func (c *Controller) mustNotExist(db weave.ReadOnlyKVStore, b orm.ModelBucket, key weave.Address) error {
	switch err := b.Has(db, key); {
	case err == nil:
		return errors.Wrapf(ErrAlreadyExists, "key %s", key)
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}
