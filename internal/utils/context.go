// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, HTTP response writing,
// and bearer-token generation and validation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SubjectCtxKey is the key used to store the authenticated token subject
// (the username the token was issued for) in the request context. Used
// together with GetSubjectFromContext for type-safe retrieval.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.SubjectCtxKey, "walter")
var SubjectCtxKey = contextKey("subject")

// GetSubjectFromContext retrieves the authenticated subject from the context.
//
// Returns the subject and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok
}
