/*
Package cash implements the native currency of the ledger.

Every address may own a wallet holding lamports. A record persisted by any
extension (an offer, a holding, a vault state) keeps its storage reserve in
the wallet stored under its own address, and closing the record hands that
wallet over to a recipient.

A transfer never leaves the source with a balance between zero and the
reserve required for an empty account.
*/
package cash
