package quadfund

import (
	"github.com/iov-one/solquad/errors"
)

// x/quadfund reserves 1100 ~ 1109.
var (
	ErrAlreadyExists      = errors.Register(1100, "already exists")
	ErrDuplicateProject   = errors.Register(1101, "project already registered")
	ErrNotRegistered      = errors.Register(1102, "project not registered in pool")
	ErrNoVotes            = errors.Register(1103, "pool has no votes")
	ErrInsufficientEscrow = errors.Register(1104, "insufficient escrow balance")
)
