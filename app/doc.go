/*
Package app contains the building blocks of an ABCI application: a message
router, decorator chaining, genesis initialization, the transaction type
and StoreApp/BaseApp implementing abci.Application on top of a
weave.CommitKVStore.

Every transaction is executed against its own cache wrap of the deliver
(or check) store. The wrap is written only if the handler returns no
error, so a failing transaction leaves no trace in the state.
*/
package app
