// Package domain defines the core business entities for cldfmeta.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Record: one harvested Zenodo deposit and its file links
//   - DatasetStats: per-dataset counters extracted from a CLDF archive
//   - Languoid: one Glottolog language entry used to merge identifiers
//   - NoDataReport: structured "archive held no CLDF data" condition
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
