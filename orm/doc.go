/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* It has a primary index (the key the object is stored under).
* It may possess one or more secondary indexes (1:1 or 1:N)
* Easy queries for one and iteration.

Models are stored by the key their owner computes. Extensions that derive
keys deterministically (for example from an admin address) use Put with that
key and One to load it back.
*/
package orm
