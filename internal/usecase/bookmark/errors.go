// Package bookmark implements saving, listing and deleting bookmarked articles.
package bookmark

import "errors"

var (
	// ErrDuplicateArticle is returned when an article with the same URL is
	// already bookmarked. The message is shown to API clients verbatim.
	ErrDuplicateArticle = errors.New("Article already saved") //nolint:staticcheck // user-facing message

	// ErrArticleNotFound is returned by Delete when no bookmark has the id.
	ErrArticleNotFound = errors.New("Article not found") //nolint:staticcheck // user-facing message

	// ErrServiceUnavailable wraps store connectivity failures.
	ErrServiceUnavailable = errors.New("bookmark store unavailable")
)
