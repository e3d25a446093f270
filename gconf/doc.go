/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Every extension stores a single configuration object under a key derived
from its package name. The object is loaded from the genesis file by
InitConfig and read back by handlers with Load.
*/
package gconf
