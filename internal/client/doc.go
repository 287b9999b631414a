// Package client provides the HTTP client the CLI uses to talk to the
// wordcut daemon API.
package client
