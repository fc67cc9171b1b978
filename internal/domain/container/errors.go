package container

import "errors"

var (
	ErrContainerNotFound       = errors.New("container not found")
	ErrContainerAlreadyExists  = errors.New("container already exists")
	ErrInvalidStatus           = errors.New("invalid container status")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrContainerTerminal       = errors.New("container is in a terminal status")
	ErrUpdateNotFound          = errors.New("tracking update not found")
)
