/*
Package token implements asset mints and the holding accounts that keep the
balance of one owner for one asset.

Every owner has one associated holding per mint, found at an address derived
from the owner and the mint. Holdings at other addresses can be created by
extensions that need an account owned by one of their own derived
authorities, the way an escrow keeps its vault.
*/
package token
