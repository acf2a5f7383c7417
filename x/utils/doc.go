/*
Package utils contains decorators shared by all extensions: a savepoint that
makes every transaction atomic, panic recovery, logging and action tagging.
*/
package utils
