// Package corpus loads instructor records and builds serving bundles.
//
// The Importer validates records and writes them to a candidate
// repository, assigning profile ids to live instructors that lack one.
// The Builder fits a feature space over a synthetic pool, vectorizes the
// pool in rate-limited batches on a worker pool and stores the space, the
// pool and its similarity index as one versioned bundle.
package corpus
