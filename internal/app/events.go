// Package app provides the desktop shell service for Wails bindings.
package app

// Event names for frontend communication.
const (
	EventConfigReloaded = "config-reloaded"
	EventWindowVisible  = "window-visible"
)
