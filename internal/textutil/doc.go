// Package textutil provides filename and slug helpers for export outputs
// and staging paths.
package textutil
