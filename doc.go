/*
Package custody defines the common interfaces that tie together the packages
of the custody ledger, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

The ledger keeps all state in a single key-value store. Extensions (escrow,
vault, token, cash, sigs) own a prefix of that store, register handlers for
the messages they understand and authenticate actors through conditions.

Context is passed through context.Context between app, decorators and
handlers. For every value XYZ of type T stored in the context there are two
functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/
package custody
