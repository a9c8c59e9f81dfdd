// Package errors provides structured error types used to classify the
// precondition failures that abort a collection run before any snapraid
// operation is started.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNotFound,
//	    "snapraid binary not found",
//	    lookErr,
//	    map[string]any{
//	        "path": toolPath,
//	    },
//	)
//
// Errors raised while parsing snapraid output are never reported through this
// package: unparseable fields degrade to their documented defaults instead.
package errors
