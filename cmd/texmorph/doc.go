// Package main provides the texmorph command-line tool.
//
// The CLI aligns before/after expressions into transition tables, keeps a
// library of named tables in SQLite, edits stored tables slot by slot,
// simulates a morph headlessly and opens a preview window that plays it.
//
// Commands share a lazily loaded configuration through commandContext;
// commands that must run without a config (config init) opt out with the
// skipConfigLoad annotation.
package main
