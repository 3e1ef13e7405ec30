// Package brightness defines the brightness level value shared by the
// setter, the state store and the controller.
package brightness
