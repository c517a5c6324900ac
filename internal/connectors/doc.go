// Package connectors holds the clients for external services.
//
// The zenodo sub-package implements the harvest, enrichment and download
// ports against the Zenodo OAI-PMH and REST APIs.
package connectors
