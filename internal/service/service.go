// Package service holds the music site's business rules.
//
// Handlers pass it validated input; it talks to the stores through small
// interfaces (UserStore, CatalogStore, NewsStore, FeedbackStore) and reports
// failures as *errs.HTTPError so the global error handler can render them.
package service
