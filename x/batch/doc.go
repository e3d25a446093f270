/*
Package batch provides batch transaction support
middleware to support multiple operations in one
transaction.

Messages of a batch are executed in order against the same store. The first
failure aborts the batch and, because the application discards the cache of
a failed transaction, every earlier write of the batch with it.
*/
package batch
