/*
Package gconf provides a toolset for managing an extension configuration.

Each extension stores its configuration as a single value under the
"_c:<package name>" key. The value is written once from the genesis file
(the "conf" section, keyed by the package name) and loaded by the handlers
that depend on it.
*/
package gconf
