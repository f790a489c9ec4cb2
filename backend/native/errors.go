package native

import "errors"

// Package errors for the native driver.
var (
	// ErrUnknownHAL is returned for a HAL backend name the driver does not know.
	ErrUnknownHAL = errors.New("native: unknown HAL backend")

	// ErrReleased is returned when using a released device.
	ErrReleased = errors.New("native: device released")

	// ErrFrameDone is returned when a frame is used after Present or Discard.
	ErrFrameDone = errors.New("native: frame already presented or discarded")
)
