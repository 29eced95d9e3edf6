// Package cli defines the Cobra command tree for espgen. The root command
// generates projects directly; generate, list, doctor, config and version are
// registered from their own files. Commands resolve the port root and rules
// and leave the work to the project and doctor packages.
package cli
