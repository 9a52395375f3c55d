//go:build production

package main

// Release builds are made with -tags production. On Windows they are also
// linked with -ldflags "-H windowsgui" so no console window is attached.
const devMode = false
