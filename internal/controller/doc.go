// Package controller is the brightness controller composition root.
//
// A Controller moves from Stopped to Running once it holds the instance
// guard. While running it owns the target level, reapplies it on every
// scheduler tick and applies, persists and publishes every user change.
// Hardware and persistence failures are logged and never stop the loop.
package controller
