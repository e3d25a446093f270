package quadfund

import (
	"github.com/iov-one/solquad"
	"github.com/iov-one/solquad/errors"
	"github.com/iov-one/solquad/gconf"
)

const confPkg = "quadfund"

// Configuration limits the size of pools and projects.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata"`
	// MaxProjects is the maximum number of projects a pool can hold.
	MaxProjects uint32 `protobuf:"varint,2,opt,name=max_projects,proto3" json:"max_projects"`
	// MaxNameLength is the maximum length of a project name in bytes.
	MaxNameLength uint32 `protobuf:"varint,3,opt,name=max_name_length,proto3" json:"max_name_length"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// Validate ensures the configuration is valid.
func (c *Configuration) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if c.MaxProjects == 0 {
		return errors.Wrap(errors.ErrState, "max projects must be positive")
	}
	if c.MaxNameLength == 0 {
		return errors.Wrap(errors.ErrState, "max name length must be positive")
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
