package bookmark

import (
	"net/http"

	"newsdesk/internal/handler/http/dto"
	"newsdesk/internal/handler/http/respond"
	bmUC "newsdesk/internal/usecase/bookmark"
)

type ListHandler struct{ Svc *bmUC.Service }

// ServeHTTP lists saved articles
// @Summary      List saved articles
// @Description  Returns at most 100 saved articles, most recently saved first.
// @Tags         bookmarks
// @Produce      json
// @Success      200 {object} respond.Envelope{data=[]dto.Article}
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      503 {object} respond.Envelope "Store unavailable"
// @Router       /api/saved-articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.List(r.Context())
	if err != nil {
		writeError(w, msgListFailed, err)
		return
	}
	respond.Success(w, http.StatusOK, dto.FromEntities(articles))
}
