package arena

import "errors"

var (
	// ErrUnknownParent is returned by AddNode when the parent id does not exist.
	ErrUnknownParent = errors.New("unknown parent node")

	// ErrLeafWithoutParent is returned by LeavesParents when a leaf is also a root.
	// It signals a broken precondition and must be treated as fatal.
	ErrLeafWithoutParent = errors.New("leaf node has no parent")
)
