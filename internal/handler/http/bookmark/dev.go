package bookmark

import (
	"fmt"
	"net/http"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/dto"
	"newsdesk/internal/handler/http/respond"
	bmUC "newsdesk/internal/usecase/bookmark"
)

// SeedHandler stores a fixed set of articles. It is registered only when
// development endpoints are enabled.
type SeedHandler struct {
	Svc     *bmUC.Service
	Samples func() []*entity.Article
	Message string

	// Reset empties the collection before seeding.
	Reset bool
}

// ServeHTTP seeds sample articles
// @Summary      Seed articles (development only)
// @Description  POST /api/add-test-articles adds fixtures under "data". GET /add-test-articles replaces all bookmarks with samples under "articles".
// @Tags         dev
// @Produce      json
// @Success      200 {object} respond.Envelope
// @Failure      503 {object} respond.Envelope "Store unavailable"
// @Router       /api/add-test-articles [post]
// @Router       /add-test-articles [get]
func (h SeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	failMsg := msgSeedFailed
	if h.Reset {
		failMsg = msgSampleFailed
	}

	saved, err := h.Svc.SeedSamples(r.Context(), h.Samples(), h.Reset)
	if err != nil {
		writeError(w, failMsg, err)
		return
	}

	out := dto.FromEntities(saved)
	if h.Reset {
		respond.JSON(w, http.StatusOK, respond.Envelope{Success: true, Message: h.Message, Articles: out})
		return
	}
	respond.SuccessMessage(w, http.StatusOK, h.Message, out)
}

type DeleteAllHandler struct{ Svc *bmUC.Service }

// ServeHTTP deletes every saved article
// @Summary      Delete all saved articles (development only)
// @Tags         dev
// @Produce      json
// @Success      200 {object} respond.Envelope "Deleted N articles"
// @Failure      503 {object} respond.Envelope "Store unavailable"
// @Router       /api/delete-all-articles [delete]
func (h DeleteAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n, err := h.Svc.DeleteAll(r.Context())
	if err != nil {
		writeError(w, msgDeleteAllFailed, err)
		return
	}
	respond.JSON(w, http.StatusOK, respond.Envelope{Success: true, Message: fmt.Sprintf("Deleted %d articles", n)})
}
