// Package services contains the application's orchestration layer.
//
// Each service implements a driving port and coordinates the domain with
// the driven ports: harvest collects and catalogs repository records,
// download fetches their archives, stats extracts cross-dataset statistics
// and writes the output tables, cleanup removes curated non-CLDF downloads
// and intake watches the datasets directory.
//
// Services depend only on domain types and port interfaces, never on
// concrete adapters.
package services
