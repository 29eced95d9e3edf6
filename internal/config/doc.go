// Package config resolves the rules that drive example discovery: which
// source files are examples, which ones are excluded, which audio demos need
// companion sources and where the examples and templates live. Built-in
// defaults can be overridden by an espgen.yaml file in the port root and by
// ESPGEN_* environment variables. The file is checked against an embedded
// JSON Schema before it is read.
package config
