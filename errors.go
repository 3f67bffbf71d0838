package gui

import "errors"

// Errors returned by Scene and Context operations. A call that returns one of
// these leaves the scene unchanged unless its documentation says otherwise.
var (
	// ErrInvalidHandle is returned for a stale or unknown node handle.
	ErrInvalidHandle = errors.New("gui: invalid handle")

	// ErrOutOfResources is returned when the node or animation pool is full.
	ErrOutOfResources = errors.New("gui: out of resources")

	// ErrInvalidOperation is returned for structurally invalid requests, such
	// as parenting a node under one of its own descendants.
	ErrInvalidOperation = errors.New("gui: invalid operation")

	// ErrResourceNotFound is returned when a texture, font or layer name is
	// not registered. It is informational: the node keeps the name and
	// renders without the resource.
	ErrResourceNotFound = errors.New("gui: resource not found")

	// ErrSceneDeleted is returned when operating on a scene after Delete.
	ErrSceneDeleted = errors.New("gui: scene deleted")
)
