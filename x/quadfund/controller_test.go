package quadfund

import (
	"math"
	"testing"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/store"
	"github.com/iov-one/solquad/weavetest"
	"github.com/iov-one/solquad/weavetest/assert"
)

// fixture creates an escrow and a pool for a new administrator.
func fixture(t *testing.T, db weave.KVStore, ctrl *Controller, balance uint64) (admin, poolKey weave.Address) {
	t.Helper()
	admin = weavetest.NewCondition().Address()
	if _, _, err := ctrl.InitializeEscrow(db, admin, balance); err != nil {
		t.Fatalf("cannot initialize escrow: %s", err)
	}
	poolKey, _, err := ctrl.InitializePool(db, admin)
	if err != nil {
		t.Fatalf("cannot initialize pool: %s", err)
	}
	return admin, poolKey
}

// registeredProject creates a project in the pool of admin and registers it.
func registeredProject(t *testing.T, db weave.KVStore, ctrl *Controller, admin weave.Address, name string) weave.Address {
	t.Helper()
	owner := weavetest.NewCondition().Address()
	key, _, err := ctrl.InitializeProject(db, owner, PoolKey(admin), name)
	if err != nil {
		t.Fatalf("cannot initialize project: %s", err)
	}
	registered, _, err := ctrl.AddProjectToPool(db, admin, key, 0)
	if err != nil {
		t.Fatalf("cannot register project: %s", err)
	}
	assert.Equal(t, key, registered)
	return key
}

func loadProject(t *testing.T, db weave.ReadOnlyKVStore, ctrl *Controller, key weave.Address) *Project {
	t.Helper()
	var p Project
	if err := ctrl.projects.One(db, key, &p); err != nil {
		t.Fatalf("cannot load project: %s", err)
	}
	return &p
}

func loadPool(t *testing.T, db weave.ReadOnlyKVStore, ctrl *Controller, admin weave.Address) *Pool {
	t.Helper()
	var p Pool
	if err := ctrl.pools.One(db, PoolKey(admin), &p); err != nil {
		t.Fatalf("cannot load pool: %s", err)
	}
	return &p
}

func loadEscrow(t *testing.T, db weave.ReadOnlyKVStore, ctrl *Controller, admin weave.Address) *Escrow {
	t.Helper()
	var e Escrow
	if err := ctrl.escrows.One(db, EscrowKey(admin), &e); err != nil {
		t.Fatalf("cannot load escrow: %s", err)
	}
	return &e
}

func TestInitializeOnce(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, poolKey := fixture(t, db, ctrl, 100)

	_, _, err := ctrl.InitializeEscrow(db, admin, 1)
	assert.IsErr(t, ErrAlreadyExists, err)
	_, _, err = ctrl.InitializePool(db, admin)
	assert.IsErr(t, ErrAlreadyExists, err)

	owner := weavetest.NewCondition().Address()
	_, _, err = ctrl.InitializeProject(db, owner, poolKey, "first")
	assert.Nil(t, err)
	_, _, err = ctrl.InitializeProject(db, owner, poolKey, "second")
	assert.IsErr(t, ErrAlreadyExists, err)

	// The failed attempt must not overwrite the escrow.
	assert.Equal(t, uint64(100), loadEscrow(t, db, ctrl, admin).Balance)
	assert.Equal(t, "first", loadProject(t, db, ctrl, ProjectKey(poolKey, owner)).Name)
}

func TestFundEscrow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, _ := fixture(t, db, ctrl, 100)

	escrow, err := ctrl.FundEscrow(db, admin, 50)
	assert.Nil(t, err)
	assert.Equal(t, uint64(150), escrow.Balance)

	_, err = ctrl.FundEscrow(db, admin, math.MaxUint64)
	assert.IsErr(t, errors.ErrOverflow, err)
	assert.Equal(t, uint64(150), loadEscrow(t, db, ctrl, admin).Balance)

	_, err = ctrl.FundEscrow(db, weavetest.NewCondition().Address(), 1)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRegistrationUniqueness(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, poolKey := fixture(t, db, ctrl, 10000)
	key := registeredProject(t, db, ctrl, admin, "My Project")

	_, _, err := ctrl.AddProjectToPool(db, admin, key, 0)
	assert.IsErr(t, ErrDuplicateProject, err)

	pool := loadPool(t, db, ctrl, admin)
	assert.Equal(t, []weave.Address{key}, pool.Projects)
	assert.Equal(t, poolKey, loadProject(t, db, ctrl, key).Pool)
}

func TestRegistrationRequirements(t *testing.T) {
	ctrl := NewController()

	cases := map[string]struct {
		setup   func(t *testing.T, db weave.KVStore) (admin, project weave.Address)
		wantErr *errors.Error
	}{
		"missing pool": {
			setup: func(t *testing.T, db weave.KVStore) (weave.Address, weave.Address) {
				admin := weavetest.NewCondition().Address()
				if _, _, err := ctrl.InitializeEscrow(db, admin, 1); err != nil {
					t.Fatal(err)
				}
				key, _, err := ctrl.InitializeProject(db, admin, PoolKey(admin), "p")
				if err != nil {
					t.Fatal(err)
				}
				return admin, key
			},
			wantErr: errors.ErrNotFound,
		},
		"missing escrow": {
			setup: func(t *testing.T, db weave.KVStore) (weave.Address, weave.Address) {
				admin := weavetest.NewCondition().Address()
				if _, _, err := ctrl.InitializePool(db, admin); err != nil {
					t.Fatal(err)
				}
				key, _, err := ctrl.InitializeProject(db, admin, PoolKey(admin), "p")
				if err != nil {
					t.Fatal(err)
				}
				return admin, key
			},
			wantErr: errors.ErrNotFound,
		},
		"missing project": {
			setup: func(t *testing.T, db weave.KVStore) (weave.Address, weave.Address) {
				admin, poolKey := fixture(t, db, ctrl, 1)
				return admin, ProjectKey(poolKey, admin)
			},
			wantErr: errors.ErrNotFound,
		},
		"pool is full": {
			setup: func(t *testing.T, db weave.KVStore) (weave.Address, weave.Address) {
				admin, poolKey := fixture(t, db, ctrl, 1)
				registeredProject(t, db, ctrl, admin, "one")
				registeredProject(t, db, ctrl, admin, "two")
				key, _, err := ctrl.InitializeProject(db, admin, poolKey, "three")
				if err != nil {
					t.Fatal(err)
				}
				return admin, key
			},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			admin, project := tc.setup(t, db)
			_, _, err := ctrl.AddProjectToPool(db, admin, project, 2)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestPoolIsolation(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	adminA, poolA := fixture(t, db, ctrl, 100)
	adminB, poolB := fixture(t, db, ctrl, 100)

	owner := weavetest.NewCondition().Address()
	keyA, _, err := ctrl.InitializeProject(db, owner, poolA, "Same Name")
	assert.Nil(t, err)
	keyB, _, err := ctrl.InitializeProject(db, owner, poolB, "Same Name")
	assert.Nil(t, err)
	if keyA.Equals(keyB) {
		t.Fatal("project keys of different pools must differ")
	}

	_, _, err = ctrl.AddProjectToPool(db, adminA, keyA, 0)
	assert.Nil(t, err)
	_, _, err = ctrl.VoteForProject(db, adminA, keyA, 7)
	assert.Nil(t, err)

	assert.Equal(t, 0, len(loadPool(t, db, ctrl, adminB).Projects))
	assert.Equal(t, uint64(0), loadPool(t, db, ctrl, adminB).TotalWeight)
	b := loadProject(t, db, ctrl, keyB)
	assert.Equal(t, false, b.IsRegistered())
	assert.Equal(t, uint64(0), b.Weight)

	// Administrator B cannot vote for the project of A.
	_, _, err = ctrl.VoteForProject(db, adminB, keyA, 1)
	assert.IsErr(t, ErrNotRegistered, err)
	_, err = ctrl.DistributeEscrowAmount(db, adminB, keyA)
	assert.IsErr(t, ErrNotRegistered, err)
	assert.Equal(t, uint64(7), loadProject(t, db, ctrl, keyA).Weight)
}

func TestRescopedRegistration(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	adminA, poolA := fixture(t, db, ctrl, 10000)
	adminB, poolB := fixture(t, db, ctrl, 10000)

	keyA := registeredProject(t, db, ctrl, adminA, "My Project")
	_, _, err := ctrl.VoteForProject(db, adminA, keyA, 3)
	assert.Nil(t, err)

	keyB, project, err := ctrl.AddProjectToPool(db, adminB, keyA, 0)
	assert.Nil(t, err)
	if keyB.Equals(keyA) {
		t.Fatal("re-scoped project must have a distinct key")
	}
	assert.Equal(t, ProjectKey(poolB, project.Owner), keyB)
	assert.Equal(t, "My Project", project.Name)
	assert.Equal(t, uint64(0), project.Weight)
	assert.Equal(t, poolB, project.Pool)
	assert.Equal(t, []weave.Address{keyB}, loadPool(t, db, ctrl, adminB).Projects)

	// The referenced record is left untouched.
	a := loadProject(t, db, ctrl, keyA)
	assert.Equal(t, poolA, a.Pool)
	assert.Equal(t, uint64(3), a.Weight)
	assert.Equal(t, []weave.Address{keyA}, loadPool(t, db, ctrl, adminA).Projects)

	// Both references now resolve to a registered record in pool B.
	_, _, err = ctrl.AddProjectToPool(db, adminB, keyA, 0)
	assert.IsErr(t, ErrDuplicateProject, err)
	_, _, err = ctrl.AddProjectToPool(db, adminB, keyB, 0)
	assert.IsErr(t, ErrDuplicateProject, err)
}

func TestRescopedRecordsKeyedByOwner(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	adminA, _ := fixture(t, db, ctrl, 10000)
	adminB, poolB := fixture(t, db, ctrl, 10000)

	first := loadProject(t, db, ctrl, registeredProject(t, db, ctrl, adminA, "first"))
	second := loadProject(t, db, ctrl, registeredProject(t, db, ctrl, adminA, "second"))
	firstKey := ProjectKey(PoolKey(adminA), first.Owner)
	secondKey := ProjectKey(PoolKey(adminA), second.Owner)

	keyFirst, _, err := ctrl.AddProjectToPool(db, adminB, firstKey, 0)
	assert.Nil(t, err)
	keySecond, _, err := ctrl.AddProjectToPool(db, adminB, secondKey, 0)
	assert.Nil(t, err)

	// Keys derive from the owner, so one administrator can re-scope
	// projects of many owners into its pool.
	assert.Equal(t, ProjectKey(poolB, first.Owner), keyFirst)
	assert.Equal(t, ProjectKey(poolB, second.Owner), keySecond)
	if keyFirst.Equals(keySecond) {
		t.Fatal("re-scoped projects of different owners must not collide")
	}
	if keyFirst.Equals(ProjectKey(poolB, adminB)) {
		t.Fatal("re-scoped project must not be keyed by the administrator")
	}
	assert.Equal(t, "first", loadProject(t, db, ctrl, keyFirst).Name)
	assert.Equal(t, "second", loadProject(t, db, ctrl, keySecond).Name)
	assert.Equal(t, []weave.Address{keyFirst, keySecond}, loadPool(t, db, ctrl, adminB).Projects)
}

func TestWeightConservation(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, _ := fixture(t, db, ctrl, 10000)

	keys := []weave.Address{
		registeredProject(t, db, ctrl, admin, "a"),
		registeredProject(t, db, ctrl, admin, "b"),
		registeredProject(t, db, ctrl, admin, "c"),
	}
	votes := []struct {
		project int
		weight  uint64
	}{
		{0, 5}, {1, 0}, {2, 11}, {0, 4}, {1, 9}, {2, 1},
	}
	for _, v := range votes {
		if _, _, err := ctrl.VoteForProject(db, admin, keys[v.project], v.weight); err != nil {
			t.Fatalf("vote: %s", err)
		}
	}

	var sum uint64
	for _, k := range keys {
		sum += loadProject(t, db, ctrl, k).Weight
	}
	assert.Equal(t, uint64(30), sum)
	assert.Equal(t, sum, loadPool(t, db, ctrl, admin).TotalWeight)
}

func TestVoteOverflow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, _ := fixture(t, db, ctrl, 1)
	a := registeredProject(t, db, ctrl, admin, "a")
	b := registeredProject(t, db, ctrl, admin, "b")

	_, _, err := ctrl.VoteForProject(db, admin, a, math.MaxUint64-1)
	assert.Nil(t, err)

	// Project b weight would fit, but the pool total would not.
	_, _, err = ctrl.VoteForProject(db, admin, b, 2)
	assert.IsErr(t, errors.ErrOverflow, err)
	assert.Equal(t, uint64(0), loadProject(t, db, ctrl, b).Weight)
	assert.Equal(t, uint64(math.MaxUint64-1), loadPool(t, db, ctrl, admin).TotalWeight)
}

func TestVoteRequiresRegistration(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, poolKey := fixture(t, db, ctrl, 1)
	key, _, err := ctrl.InitializeProject(db, admin, poolKey, "unregistered")
	assert.Nil(t, err)

	_, _, err = ctrl.VoteForProject(db, admin, key, 1)
	assert.IsErr(t, ErrNotRegistered, err)
	_, err = ctrl.DistributeEscrowAmount(db, admin, key)
	assert.IsErr(t, ErrNotRegistered, err)
	assert.Equal(t, uint64(0), loadPool(t, db, ctrl, admin).TotalWeight)
}

func TestDistributionBound(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, _ := fixture(t, db, ctrl, 1000)
	a := registeredProject(t, db, ctrl, admin, "a")
	b := registeredProject(t, db, ctrl, admin, "b")
	c := registeredProject(t, db, ctrl, admin, "c")
	for key, w := range map[string]uint64{string(a): 1, string(b): 2, string(c): 4} {
		if _, _, err := ctrl.VoteForProject(db, admin, weave.Address(key), w); err != nil {
			t.Fatalf("vote: %s", err)
		}
	}

	// Each distribution uses the balance left by the previous one.
	steps := []struct {
		project weave.Address
		want    uint64
		balance uint64
	}{
		{a, 1000 * 1 / 7, 1000 - 142},
		{b, 858 * 2 / 7, 858 - 245},
		{c, 613 * 4 / 7, 613 - 350},
	}
	for i, s := range steps {
		before := loadProject(t, db, ctrl, s.project).DistributedAmount
		share, err := ctrl.DistributeEscrowAmount(db, admin, s.project)
		if err != nil {
			t.Fatalf("step %d: %s", i, err)
		}
		assert.Equal(t, s.want, share)
		assert.Equal(t, before+s.want, loadProject(t, db, ctrl, s.project).DistributedAmount)
		assert.Equal(t, s.balance, loadEscrow(t, db, ctrl, admin).Balance)
	}
}

func TestDistributionWithoutVotes(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, _ := fixture(t, db, ctrl, 500)
	key := registeredProject(t, db, ctrl, admin, "a")

	_, err := ctrl.DistributeEscrowAmount(db, admin, key)
	assert.IsErr(t, ErrNoVotes, err)
	_, _, err = ctrl.DistributeRound(db, admin)
	assert.IsErr(t, ErrNoVotes, err)

	assert.Equal(t, uint64(500), loadEscrow(t, db, ctrl, admin).Balance)
	assert.Equal(t, uint64(0), loadProject(t, db, ctrl, key).DistributedAmount)
}

func TestDistributionEmptyEscrow(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, _ := fixture(t, db, ctrl, 0)
	key := registeredProject(t, db, ctrl, admin, "a")
	_, _, err := ctrl.VoteForProject(db, admin, key, 1)
	assert.Nil(t, err)

	_, err = ctrl.DistributeEscrowAmount(db, admin, key)
	assert.IsErr(t, ErrInsufficientEscrow, err)
}

func TestVoteThenDistribute(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, _ := fixture(t, db, ctrl, 10000)
	key := registeredProject(t, db, ctrl, admin, "My Project")

	project, pool, err := ctrl.VoteForProject(db, admin, key, 10)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), project.Weight)
	assert.Equal(t, uint64(10), pool.TotalWeight)

	share, err := ctrl.DistributeEscrowAmount(db, admin, key)
	assert.Nil(t, err)
	assert.Equal(t, uint64(10000), share)
	assert.Equal(t, uint64(0), loadEscrow(t, db, ctrl, admin).Balance)
	assert.Equal(t, uint64(10000), loadProject(t, db, ctrl, key).DistributedAmount)

	// Nothing left to distribute.
	_, err = ctrl.DistributeEscrowAmount(db, admin, key)
	assert.IsErr(t, ErrInsufficientEscrow, err)
}

func TestDistributeRound(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController()
	admin, _ := fixture(t, db, ctrl, 1000)
	a := registeredProject(t, db, ctrl, admin, "a")
	b := registeredProject(t, db, ctrl, admin, "b")
	c := registeredProject(t, db, ctrl, admin, "c")
	for key, w := range map[string]uint64{string(a): 1, string(b): 2, string(c): 4} {
		if _, _, err := ctrl.VoteForProject(db, admin, weave.Address(key), w); err != nil {
			t.Fatalf("vote: %s", err)
		}
	}

	total, paid, err := ctrl.DistributeRound(db, admin)
	assert.Nil(t, err)

	// Every share is computed against the same snapshot.
	assert.Equal(t, uint64(142), loadProject(t, db, ctrl, a).DistributedAmount)
	assert.Equal(t, uint64(285), loadProject(t, db, ctrl, b).DistributedAmount)
	assert.Equal(t, uint64(571), loadProject(t, db, ctrl, c).DistributedAmount)
	assert.Equal(t, uint64(998), total)
	assert.Equal(t, 3, paid)
	assert.Equal(t, uint64(2), loadEscrow(t, db, ctrl, admin).Balance)
}

func TestShare(t *testing.T) {
	cases := map[string]struct {
		balance, weight, total uint64
		want                   uint64
		wantErr                *errors.Error
	}{
		"whole balance": {
			balance: 10000, weight: 10, total: 10,
			want: 10000,
		},
		"floor": {
			balance: 10, weight: 1, total: 3,
			want: 3,
		},
		"zero weight": {
			balance: 10, weight: 0, total: 3,
			want: 0,
		},
		"product wider than 64 bits": {
			balance: math.MaxUint64, weight: math.MaxUint64 - 1, total: math.MaxUint64,
			want: math.MaxUint64 - 1,
		},
		"quotient overflow": {
			balance: math.MaxUint64, weight: 3, total: 2,
			wantErr: errors.ErrOverflow,
		},
		"no votes": {
			balance: 1, weight: 0, total: 0,
			wantErr: ErrNoVotes,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := Share(tc.balance, tc.weight, tc.total)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestKeys(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	assert.Equal(t, EscrowKey(a), EscrowKey(a))
	if EscrowKey(a).Equals(PoolKey(a)) {
		t.Fatal("escrow and pool keys must differ")
	}
	if ProjectKey(a, b).Equals(ProjectKey(b, a)) {
		t.Fatal("project key must depend on argument order")
	}
	// Length prefixes keep concatenations apart.
	if derive("t", []byte{1, 2}, []byte{3}).Equals(derive("t", []byte{1}, []byte{2, 3})) {
		t.Fatal("derive is not injective")
	}
	assert.Nil(t, ProjectKey(a, b).Validate())
}
