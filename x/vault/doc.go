/*
Package vault implements a per-user custody of native lamports.

A user initializes a vault state and a custody account, both at addresses
derived from the user. Deposits are ordinary transfers into the custody
account. Withdrawals are only possible through this extension, acting as the
derived authority of the custody account.
*/
package vault
