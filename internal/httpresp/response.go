package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse wraps collection endpoints that accept ?limit=.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
	Limit int `json:"limit,omitempty"`
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

func List[T any](c *gin.Context, data []T, limit int) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Count: len(data),
		Limit: limit,
	})
}
