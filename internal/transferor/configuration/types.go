package configuration

import (
	"time"
)

type TransferorConfig struct {
	// Port the prometheus metrics endpoint binds to.
	MetricsPort uint16
	// Directory scanned for request documents each planning cycle.
	SpoolPath string
	// Path to the JSON catalog snapshot backing the file catalog.
	CatalogPath string
	// Number of chunks each workflow's input is partitioned into,
	// usually the number of destination sites.
	NumChunks int
	// Maximum number of workflows planned concurrently.
	Parallelism int
	// Time between planning cycles.
	CycleInterval time.Duration
}
