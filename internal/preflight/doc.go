// Package preflight provides readiness checks for the external binaries,
// APIs, and filesystem paths the pipelines depend on.
//
// The CLI "dugout preflight" command runs RunAll and renders the results so
// a misconfigured binary path or an unwritable library mount surfaces before
// a long download run burns time on a doomed batch.
package preflight
