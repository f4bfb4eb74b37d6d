// Package sqliteexternal links the optional CGO SQLite driver.
//
// The passage store runs on the pure Go driver by default. To use
// github.com/mattn/go-sqlite3 instead, build with:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./...
//
// core/sqlite imports this package under that tag, so nothing else needs to
// change.
package sqliteexternal
