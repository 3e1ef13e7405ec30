// Package logging provides structured logging for the brightkeep daemon.
//
// It wraps a zap logger configured for human-readable console output on
// stderr. Components take a *zap.Logger (usually from Named) so tests can
// pass zap.NewNop or an observer core.
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
package logging
