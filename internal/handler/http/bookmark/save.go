package bookmark

import (
	"encoding/json"
	"errors"
	"net/http"

	httpx "newsdesk/internal/handler/http"
	"newsdesk/internal/handler/http/dto"
	"newsdesk/internal/handler/http/respond"
	bmUC "newsdesk/internal/usecase/bookmark"
)

var errInvalidBody = errors.New("request body must be a JSON article")

type SaveHandler struct{ Svc *bmUC.Service }

// ServeHTTP saves an article
// @Summary      Save article
// @Description  Bookmarks an article returned by one of the feed endpoints. The URL must be unique.
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Param        article body dto.SaveRequest true "Article to save"
// @Success      201 {object} respond.Envelope{data=dto.Article} "Article saved successfully"
// @Failure      400 {object} respond.Envelope "Validation error or Article already saved"
// @Failure      413 {object} respond.Envelope "Request body too large"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Header       429 {integer} Retry-After "Seconds until the client should retry"
// @Failure      503 {object} respond.Envelope "Store unavailable"
// @Router       /api/save-article [post]
func (h SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if httpx.IsBodyTooLarge(err) {
			writeError(w, msgSaveFailed, err)
			return
		}
		respond.Fail(w, http.StatusBadRequest, msgSaveFailed, errInvalidBody.Error())
		return
	}

	in, err := req.ToSaveInput()
	if err != nil {
		writeError(w, msgSaveFailed, err)
		return
	}

	saved, err := h.Svc.Save(r.Context(), in)
	if err != nil {
		writeError(w, msgSaveFailed, err)
		return
	}
	respond.SuccessMessage(w, http.StatusCreated, msgSaved, dto.FromEntity(saved))
}
