package player

import "errors"

var (
	// ErrLoad means the source could not be fetched or decoded.
	ErrLoad = errors.New("load failed")
	// ErrValidation means the payload is not a valid animation.
	ErrValidation = errors.New("broken or corrupted file")
	// ErrEngine means the rendering engine refused a handle.
	ErrEngine = errors.New("engine error")
	// ErrContainerNotReady means an animation was loaded before Mount.
	ErrContainerNotReady = errors.New("container not rendered")
	// ErrLoadSuperseded is returned by a Load that a later Load replaced.
	ErrLoadSuperseded = errors.New("load superseded")
	// ErrDestroyed is returned by Load after Destroy.
	ErrDestroyed = errors.New("player destroyed")
)
