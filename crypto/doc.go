/*
Package crypto wraps the ed25519 primitives used to authenticate
transactions. A public key is turned into a weave.Condition so that a valid
signature grants the permission of its address.
*/
package crypto
