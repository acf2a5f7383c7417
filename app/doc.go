/*
Package app contains the pieces needed to run the extensions as an ABCI
application: a message router, the decorator chain, the commit store that
keeps separate check and deliver caches, and BaseApp, which executes
transactions one at a time.
*/
package app
