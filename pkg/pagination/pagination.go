package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a validated page request
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Meta describes a returned page
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Parse reads page and limit from the query, falling back to defaults and clamping limit
func Parse(c *gin.Context) Params {
	return New(atoi(c.Query("page"), DefaultPage), atoi(c.Query("limit"), DefaultLimit))
}

// New clamps page and limit into range. Page is capped so the offset fits in an int.
func New(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// Meta builds the page metadata for a result set of total rows
func (p Params) Meta(total int64) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}

func atoi(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
