// Package libdiff computes structural differences between kJSON trees.
//
// # Usage
//
//	// Compute the change between two trees; nil means no difference.
//	c := libdiff.Diff(oldNode, newNode)
//
//	// Apply it to reconstruct the new tree
//	patched, err := libdiff.Apply(oldNode, c)
//
//	// Undo it
//	orig, err := libdiff.Apply(patched, libdiff.Reverse(c))
//
// Object members are aligned by key and array elements by value with
// the diff-match-patch algorithm of github.com/sergi/go-diff, and
// strings are diffed as text. Member order and duplicate keys are kept.
//
// A Change converts to and from a kJSON tree with Change.Node and
// FromNode, so that changes can be stored, transmitted and applied
// later.
//
// # Related Packages
//
//   - github.com/signadot/kjson-format/kjson/ir - tree representation
//   - github.com/signadot/kjson-format/kjson/encode - rendering changes
package libdiff
