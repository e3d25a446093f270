/*
Package quadfund implements a quadratic funding escrow.

An administrator owns exactly one escrow and one pool. Projects are
initialized by their owner, registered into a pool by the pool
administrator, receive weighted votes and are paid out of the escrow in
proportion to their share of the pool weight.

All records are stored under keys derived from the identities that own
them, so the same inputs always name the same record:

	EscrowKey(admin)         escrow of an administrator
	PoolKey(admin)           pool of an administrator
	ProjectKey(pool, owner)  project of an owner, scoped to a pool

When an administrator registers a project derived for another pool, the
record for its own pool is ProjectKey(pool, owner) with the owner of the
referenced project, not the administrator. An administrator may register
projects of many owners, and keying by the administrator would make them
share one record.

Votes accumulate raw weight. Any quadratic transform of contributions must
be applied by the caller before voting.
*/
package quadfund
