// Package zenodo talks to the Zenodo scholarly repository.
//
// Three surfaces are used:
//
//   - the OAI-PMH endpoint (oai2d) for listing a community's records as
//     Dublin Core metadata, paged with resumption tokens
//   - the REST API (/api/records/<id>) for the per-record details the OAI
//     listing omits: the deposit version and the attached file links
//   - the plain file links for downloading the archives themselves
//
// All three share one rate limiter combining a proactive token bucket with
// reactive handling of the X-RateLimit-* and Retry-After headers Zenodo
// sends. An access token, when configured, is appended to request URLs as
// the access_token query parameter; Zenodo has no OAuth flow for this.
package zenodo
