// Package scheduler runs the periodic brightness reapplication timer.
package scheduler
