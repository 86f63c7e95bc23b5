// Command dugout runs the broadcast archive pipelines: discovering video
// IDs, fetching their metadata, loading game schedules, and downloading
// and filing broadcast audio.
package main
