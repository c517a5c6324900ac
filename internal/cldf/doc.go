// Package cldf reads CLDF datasets packed inside zip archives.
//
// A CLDF dataset is described by a JSON metadata document (CSVW-flavoured)
// that lists its tables, their columns and the CSV dialect each file is
// written in. This package locates those documents inside an archive,
// resolves each table's effective dialect from the table/document/default
// override chain, finds the backing data file (which may itself be zipped
// inside the outer archive) and streams its rows as semantic column
// mappings.
//
// The package reads the format only. It never writes CLDF, and it matches
// the dialect subset the published datasets actually use rather than the
// full CSVW specification.
package cldf
