// Package api exposes the editing daemon over HTTP.
//
// The router (chi) serves project CRUD, clip registration, transcript
// attachment, the collapsed timeline preview, and export job control. All
// endpoints speak JSON. When an API token is configured, /api routes require
// a bearer token; /health stays open for probes.
package api
