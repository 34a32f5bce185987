// Package errcode holds the oops error codes shared by services and the HTTP layer.
package errcode

const (
	// Validation marks bad caller input.
	Validation = "validation"
	// Provider marks a failed call to the chat or speech provider.
	Provider = "provider"
)
