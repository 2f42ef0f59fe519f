package bookmark

import (
	"errors"
	"net/http"

	"newsdesk/internal/domain/entity"
	httpx "newsdesk/internal/handler/http"
	"newsdesk/internal/handler/http/respond"
	bmUC "newsdesk/internal/usecase/bookmark"
)

const (
	msgSaved           = "Article saved successfully"
	msgSaveFailed      = "Error saving article"
	msgListFailed      = "Error fetching saved articles"
	msgDeleted         = "Article deleted successfully"
	msgDeleteFailed    = "Error deleting article"
	msgFixturesAdded   = "Test articles added successfully"
	msgSamplesAdded    = "Sample articles added successfully"
	msgSeedFailed      = "Error adding test articles"
	msgSampleFailed    = "Error adding sample articles"
	msgDeleteAllFailed = "Error deleting articles"
	msgBodyTooLarge    = "Request body too large"
)

// writeError maps a bookmark use case error to a status code. Errors that are
// not classified become 500 with the endpoint's failure message.
func writeError(w http.ResponseWriter, failMsg string, err error) {
	var ve *entity.ValidationError
	switch {
	case errors.As(err, &ve):
		respond.Fail(w, http.StatusBadRequest, failMsg, ve.Message)
	case errors.Is(err, bmUC.ErrDuplicateArticle):
		respond.Fail(w, http.StatusBadRequest, bmUC.ErrDuplicateArticle.Error(), "")
	case errors.Is(err, bmUC.ErrArticleNotFound):
		respond.Fail(w, http.StatusNotFound, bmUC.ErrArticleNotFound.Error(), "")
	case httpx.IsBodyTooLarge(err):
		respond.Fail(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge, "")
	case errors.Is(err, bmUC.ErrServiceUnavailable):
		respond.SafeError(w, http.StatusServiceUnavailable, failMsg, err)
	default:
		respond.SafeError(w, http.StatusInternalServerError, failMsg, err)
	}
}
