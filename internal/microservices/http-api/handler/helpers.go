package handler

import (
	"strconv"
	"strings"

	"unionhub/internal/microservices/http-api/middleware"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer path parameter. Anything else is a 404.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.WriteError(c, apperrors.NotFound("Not found."))
		return 0, false
	}
	return id, true
}

// bindJSON binds the body and writes a 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.WriteError(c, middleware.BindingError(err))
		return false
	}
	return true
}

func pagination(c *gin.Context) repository.Pagination {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("page_size"))
	return repository.Pagination{Page: page, PageSize: size}.Normalize()
}

// queryBool reads true/false/1/0 style flags. Unparseable values are ignored.
func queryBool(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &v
}

func queryInt64(c *gin.Context, name string) *int64 {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryList splits a comma separated parameter, dropping blanks.
func queryList(c *gin.Context, name string) []string {
	var out []string
	for _, part := range strings.Split(c.Query(name), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
