package app

import "fmt"

// Release of the qfund application. Bump Minor when the stored models or
// the transaction format change.
const (
	Major  = 0
	Minor  = 1
	Patch  = 0
	Suffix = "-dev"
)

// GitCommit is set at build time with
//
//	-ldflags "-X github.com/iov-one/solquad/cmd/qfund/app.GitCommit=<sha>"
var GitCommit = ""

// Version returns the release reported by abci Info and the version command.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Major, Minor, Patch, Suffix)
	if GitCommit != "" {
		v += "+" + GitCommit
	}
	return v
}
