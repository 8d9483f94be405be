// Package lookup implements the online candidate services.
//
// A Service turns one bibliography entry into a list of candidate records
// fetched from a public metadata API. Lookups are best-effort: network
// failures, non-success responses, and unparsable payloads are logged and
// yield an empty candidate list, never an error. Unknown service names are
// rejected up front by FromConfig, before any network activity.
package lookup
