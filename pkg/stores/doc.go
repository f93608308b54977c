// Package stores provides the install history persistence layer, backed
// by SQLite with embedded schema migrations.
package stores
