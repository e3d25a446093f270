package server

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/solquad/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	flagForce = "i"

	// DirConfig is the directory under home holding the tendermint
	// configuration.
	DirConfig = "config"
	// GenesisFile is the name of the tendermint genesis file.
	GenesisFile = "genesis.json"

	appStateKey = "app_state"
)

// GenOptions can parse command-line and flag to
// generate default app_state for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd writes the application state generated by gen into the genesis
// file created by `tendermint init` under home. An existing app_state is
// only replaced when the -i flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	force := initFlags.Bool(flagForce, false, "overwrite existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	state, err := gen(initFlags.Args())
	if err != nil {
		return err
	}

	genFile := filepath.Join(home, DirConfig, GenesisFile)
	if err := addGenesisOptions(genFile, state, *force); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func addGenesisOptions(filename string, state json.RawMessage, force bool) error {
	raw, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrapf(errors.ErrNotFound, "%s: run tendermint init first", filename)
		}
		return errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}

	var doc GenesisDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInput, "parse genesis: %s", err)
	}
	if existing, ok := doc[appStateKey]; ok && len(existing) > 0 && string(existing) != "null" && !force {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use -i to overwrite")
	}

	doc[appStateKey] = state
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "serialize genesis: %s", err)
	}
	return ioutil.WriteFile(filename, out, 0600)
}
