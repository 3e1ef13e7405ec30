// Package instance keeps a single brightkeep daemon running per user.
//
// Unix uses an flock on a file in the runtime directory; Windows uses a named
// mutex. Both are released by the OS when the holder exits, including on
// crash or kill.
package instance
