// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RecordStore: harvested record catalog persistence
//   - ReportStore: no-data report persistence
//   - HarvestSource: OAI-PMH record listing per community
//   - RecordEnricher: per-record REST detail fetch (version, file links)
//   - FileFetcher: checksum-validated archive download
//   - OutputWriter: CLDF output table writing
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
//   - LanguoidSource: Glottolog languoid index. Without it, dataset-local
//     language guesses stand in for global identifiers.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
