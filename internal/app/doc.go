// Package app wires configuration loading, the analyzer and the output
// writers into the tilestat command.
package app
