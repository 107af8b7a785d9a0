// Package errs defines the error type every endpoint reports failures with.
//
// Every failure is an *HTTPError. Its Kind decides the status code, and
// Body renders it with the historical response fields (success, message,
// error, errors) existing clients read.
package errs
