//go:build !production

package main

// devMode enables devtools and debug logging.
const devMode = true
