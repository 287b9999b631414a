// Package preflight provides readiness checks for the external tools and
// filesystem paths wordcut depends on.
//
// These checks run in two contexts:
//   - The daemon runs RunAll at startup and refuses to serve when a
//     required check fails.
//   - The CLI "wordcut status" command uses the individual check functions
//     to display tool and directory health.
package preflight
