// Package metadata drains the processing backlog through the YouTube
// Data API. Retrieve workers pull random batches of IDs and fetch their
// metadata; save workers persist the records. IDs the API refuses to
// return are quarantined so they are never requested again, and quota
// exhaustion stops the whole run.
package metadata
