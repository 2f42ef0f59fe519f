package bookmark

import (
	"net/http"

	"newsdesk/internal/handler/http/dto"
	"newsdesk/internal/handler/http/respond"
	bmUC "newsdesk/internal/usecase/bookmark"
)

type DeleteHandler struct{ Svc *bmUC.Service }

// ServeHTTP deletes a saved article
// @Summary      Delete saved article
// @Description  Removes a saved article by id and returns it. Unknown or malformed ids yield 404.
// @Tags         bookmarks
// @Produce      json
// @Param        id path string true "Article ID"
// @Success      200 {object} respond.Envelope{data=dto.Article} "Article deleted successfully"
// @Failure      404 {object} respond.Envelope "Article not found"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      503 {object} respond.Envelope "Store unavailable"
// @Router       /api/saved-articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, msgDeleteFailed, err)
		return
	}
	respond.SuccessMessage(w, http.StatusOK, msgDeleted, dto.FromEntity(removed))
}
