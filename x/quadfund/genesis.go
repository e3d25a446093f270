package quadfund

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/gconf"
)

// Initializer fulfils the Initializer interface to load data from the genesis file
type Initializer struct{}

var _ weave.Initializer = (*Initializer)(nil)

// FromGenesis stores the package configuration found under
// "conf.quadfund" and creates the escrows and pools listed under
// "quadfund".
func (*Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var state struct {
		Escrows []struct {
			Admin   weave.Address `json:"admin"`
			Balance uint64        `json:"balance"`
		} `json:"escrows"`
		Pools []struct {
			Admin weave.Address `json:"admin"`
		} `json:"pools"`
	}
	if err := opts.ReadOptions("quadfund", &state); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	ctrl := NewController()
	for i, e := range state.Escrows {
		if err := e.Admin.Validate(); err != nil {
			return errors.Wrapf(err, "escrow %d: admin", i)
		}
		if _, _, err := ctrl.InitializeEscrow(db, e.Admin, e.Balance); err != nil {
			return errors.Wrapf(err, "escrow %d", i)
		}
	}
	for i, p := range state.Pools {
		if err := p.Admin.Validate(); err != nil {
			return errors.Wrapf(err, "pool %d: admin", i)
		}
		if _, _, err := ctrl.InitializePool(db, p.Admin); err != nil {
			return errors.Wrapf(err, "pool %d", i)
		}
	}
	return nil
}
