// Package kpath provides kinded path parsing.
//
// Kinded paths encode the kind of container being entered in the syntax:
//   - .field - object field
//   - [index] - array element
//   - .* / [*] - wildcards
//
// Fields which are not identifiers are quoted with any kJSON quote:
//
//	users[0].name
//	"content-type".charset
//	resources[*].status
package kpath
