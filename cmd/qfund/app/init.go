package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/crypto"
	"github.com/iov-one/solquad/errors"
)

const (
	defaultMaxProjects   = 100
	defaultMaxNameLength = 64
)

type escrowState struct {
	Admin   weave.Address `json:"admin"`
	Balance uint64        `json:"balance"`
}

type poolState struct {
	Admin weave.Address `json:"admin"`
}

type appState struct {
	Conf struct {
		Quadfund struct {
			Metadata      *weave.Metadata `json:"metadata"`
			MaxProjects   uint32          `json:"max_projects"`
			MaxNameLength uint32          `json:"max_name_length"`
		} `json:"quadfund"`
	} `json:"conf"`
	Quadfund struct {
		Escrows []escrowState `json:"escrows"`
		Pools   []poolState   `json:"pools"`
	} `json:"quadfund"`
}

// GenInitOptions will produce the app state for a dev chain with a single
// administrator owning an escrow and a pool.
//
// The first argument is the administrator address. When missing, a new key
// is generated and its private part printed. The optional second argument
// is the initial escrow balance.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var admin weave.Address
	if len(args) > 0 {
		addr, err := weave.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "admin address")
		}
		admin = addr
	} else {
		key := crypto.GenPrivKeyEd25519()
		admin = key.PublicKey().Address()
		fmt.Printf("admin private key: %s\n", hex.EncodeToString(key.Ed25519))
	}
	if err := admin.Validate(); err != nil {
		return nil, errors.Wrap(err, "admin address")
	}

	var balance uint64
	if len(args) > 1 {
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrAmount, "balance: %s", err)
		}
		balance = n
	}

	var state appState
	state.Conf.Quadfund.Metadata = &weave.Metadata{Schema: 1}
	state.Conf.Quadfund.MaxProjects = defaultMaxProjects
	state.Conf.Quadfund.MaxNameLength = defaultMaxNameLength
	state.Quadfund.Escrows = []escrowState{{Admin: admin, Balance: balance}}
	state.Quadfund.Pools = []poolState{{Admin: admin}}

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return raw, nil
}
