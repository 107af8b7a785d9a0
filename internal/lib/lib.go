// Package lib groups helpers shared by the service layer that are not part
// of the request path: the Resend email client and templates, the asynq
// job queue that sends welcome emails, and small formatting utilities.
package lib
