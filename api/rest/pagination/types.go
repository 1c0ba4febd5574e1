package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Params holds limit/offset read from the query string
type Params struct {
	Limit  int
	Offset int
}

// Meta is returned next to every paged list
type Meta struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

func NewMeta(params Params, total int) Meta {
	return Meta{
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
		HasMore: params.Offset+params.Limit < total,
	}
}

// reads ?limit= and ?offset=, clamping limit to [1, maxLimit]. Unparseable
// values fall back to the defaults.
func FromQuery(c *gin.Context, defaultLimit, maxLimit int) Params {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}

	limit = min(limit, maxLimit)

	offset, err := strconv.Atoi(c.Query("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return Params{Limit: limit, Offset: offset}
}
