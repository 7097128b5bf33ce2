// Package tablestore persists named alignment documents in a SQLite file.
//
// Reads go straight to the database. Writes additionally hold an exclusive
// lock file so that concurrent CLI invocations editing the same library are
// serialised. Entries are identified by a UUID and addressed by a unique,
// user-chosen name.
package tablestore
