// Package services defines shared utilities consumed by the pipelines and
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, video IDs, and worker indexes for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification consistent across subprocess tools, the metadata API,
//     and the schedule API.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, retries) stays uniform.
package services
