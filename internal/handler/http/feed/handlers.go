package feed

import (
	"net/http"

	feedUC "newsdesk/internal/usecase/feed"
)

const (
	msgAllNewsFailed = "Error fetching news. Please try again later."
	msgTopFailed     = "Error fetching top headlines"
	msgCountryFailed = "Error fetching country news"

	allNewsCategory = "technology"
)

type AllNewsHandler struct{ Svc *feedUC.Service }

// ServeHTTP returns technology headlines
// @Summary      All news
// @Description  Technology headlines for the United States, optionally filtered by keyword.
// @Tags         feed
// @Produce      json
// @Param        q        query string false "Keyword filter"
// @Param        page     query int    false "Page number"      default(1)
// @Param        pageSize query int    false "Articles per page" default(12) maximum(100)
// @Success      200 {object} respond.Envelope{data=PageResponse}
// @Failure      400 {object} respond.Envelope "Invalid parameter"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      500 {object} respond.Envelope "Upstream provider failure"
// @Router       /api/all-news [get]
func (h AllNewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, size := pagingFrom(r)
	serve(w, r, h.Svc, feedUC.Query{
		Category: allNewsCategory,
		Country:  feedUC.DefaultCountry,
		Keyword:  r.URL.Query().Get("q"),
		Page:     page,
		PageSize: size,
	}, msgAllNewsFailed)
}

type TopHeadlinesHandler struct{ Svc *feedUC.Service }

// ServeHTTP returns headlines for a category
// @Summary      Top headlines
// @Description  United States headlines for one category.
// @Tags         feed
// @Produce      json
// @Param        category query string false "Category" Enums(business, entertainment, general, health, science, sports, technology) default(general)
// @Param        page     query int    false "Page number"      default(1)
// @Param        pageSize query int    false "Articles per page" default(12) maximum(100)
// @Success      200 {object} respond.Envelope{data=PageResponse}
// @Failure      400 {object} respond.Envelope "Invalid parameter"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      500 {object} respond.Envelope "Upstream provider failure"
// @Router       /api/top-headlines [get]
func (h TopHeadlinesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, size := pagingFrom(r)
	category := r.URL.Query().Get("category")
	if category == "" {
		category = feedUC.DefaultCategory
	}
	serve(w, r, h.Svc, feedUC.Query{
		Category: category,
		Country:  feedUC.DefaultCountry,
		Page:     page,
		PageSize: size,
	}, msgTopFailed)
}

type CountryHandler struct{ Svc *feedUC.Service }

// ServeHTTP returns headlines for a country
// @Summary      Country news
// @Description  Headlines from every category for a two-letter ISO 3166-1 country code.
// @Tags         feed
// @Produce      json
// @Param        iso      path  string true  "Country code" example(gb)
// @Param        page     query int    false "Page number"      default(1)
// @Param        pageSize query int    false "Articles per page" default(12) maximum(100)
// @Success      200 {object} respond.Envelope{data=PageResponse}
// @Failure      400 {object} respond.Envelope "Invalid country code"
// @Failure      429 {object} respond.Envelope "Too many requests"
// @Failure      500 {object} respond.Envelope "Upstream provider failure"
// @Router       /api/country/{iso} [get]
func (h CountryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, size := pagingFrom(r)
	serve(w, r, h.Svc, feedUC.Query{
		Country:  r.PathValue("iso"),
		Page:     page,
		PageSize: size,
	}, msgCountryFailed)
}
