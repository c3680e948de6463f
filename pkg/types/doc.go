// Package types defines the Todo record, the request types accepted by the
// store, the Provider interface for backing storage, configuration, and the
// standard error values shared by every layer of the todos module.
package types
