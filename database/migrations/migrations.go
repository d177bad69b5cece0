// Package migrations registers the index migrations. Importing it for side
// effects makes them available to migration.Runner.
package migrations
