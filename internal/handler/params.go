package handler

import (
	"net/http"
	"strconv"
	"strings"

	"ModelHub/utils"

	"github.com/gin-gonic/gin"
)

// idParam parses a positive integer path parameter, answering 400 otherwise.
func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.Fail(c, http.StatusBadRequest, name+" inválido")
		return 0, false
	}
	return id, true
}

// formValue reads a multipart field, falling back to the query string the way
// older clients send the upload metadata.
func formValue(c *gin.Context, key string) (string, bool) {
	if v, ok := c.GetPostForm(key); ok {
		return strings.TrimSpace(v), true
	}
	if v, ok := c.GetQuery(key); ok {
		return strings.TrimSpace(v), true
	}
	return "", false
}

// optionalUint parses key when present and non-empty.
func optionalUint(c *gin.Context, key string) (*uint64, bool) {
	raw, ok := formValue(c, key)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		utils.Fail(c, http.StatusBadRequest, key+" inválido")
		return nil, false
	}
	return &v, true
}
