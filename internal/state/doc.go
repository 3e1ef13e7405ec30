// Package state persists the last user-chosen brightness level.
//
// On Unix the level lives in <UserConfigDir>/brightkeep/state.yaml under the
// brightness_level key. On Windows it is the BrightnessLevel DWORD under
// HKCU\SOFTWARE\BrightnessControl. A missing or malformed value always loads
// as brightness.Default.
package state
