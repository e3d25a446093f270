// Package server implements the init and start commands shared by
// application binaries.
package server
