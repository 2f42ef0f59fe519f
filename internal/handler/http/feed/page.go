package feed

import (
	"errors"
	"net/http"
	"strconv"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/dto"
	"newsdesk/internal/handler/http/respond"
	feedUC "newsdesk/internal/usecase/feed"
)

// PageResponse is the data of every headline endpoint.
type PageResponse struct {
	Articles     []*dto.Article `json:"articles"`
	TotalResults int            `json:"totalResults" example:"38"`
	CurrentPage  int            `json:"currentPage" example:"1"`
}

// pagingFrom reads page and pageSize. Missing or non-numeric values are left
// zero and replaced by the defaults in Query.Normalize.
func pagingFrom(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize"))
	return page, pageSize
}

// serve runs q and writes the page, or maps the failure onto failMsg.
func serve(w http.ResponseWriter, r *http.Request, svc *feedUC.Service, q feedUC.Query, failMsg string) {
	page, err := svc.FetchPage(r.Context(), q)
	if err != nil {
		writeError(w, failMsg, err)
		return
	}
	respond.Success(w, http.StatusOK, PageResponse{
		Articles:     dto.FromEntities(page.Articles),
		TotalResults: page.TotalResults,
		CurrentPage:  page.CurrentPage,
	})
}

func writeError(w http.ResponseWriter, failMsg string, err error) {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		respond.Fail(w, http.StatusBadRequest, failMsg, ve.Message)
		return
	}
	if ue, ok := feedUC.AsUpstream(err); ok {
		// the provider's own explanation is safe to show
		respond.Fail(w, http.StatusInternalServerError, failMsg, ue.Message)
		return
	}
	respond.SafeError(w, http.StatusInternalServerError, failMsg, err)
}
