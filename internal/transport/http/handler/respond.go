package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"familytree-api/internal/domain"
	resp "familytree-api/internal/transport/http/response"
)

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, resp.OK(data))
}

// fail 把 service 的错误类别映射成统一响应码；
// NotFound 与 Forbidden 在这里保持可区分（不做旧系统那种一律 403 的折叠）。
func fail(c *gin.Context, err error) {
	code := resp.CodeServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		code = resp.CodeNotFound
	case errors.Is(err, domain.ErrForbidden):
		code = resp.CodeForbidden
	case errors.Is(err, domain.ErrConflict):
		code = resp.CodeConflict
	case errors.Is(err, domain.ErrUnauthorized):
		code = resp.CodeUnauthorized
	case errors.Is(err, domain.ErrInvalid):
		code = resp.CodeBadRequest
	}
	c.JSON(http.StatusOK, resp.Error(code, err.Error()))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, err.Error()))
}

// actorID 由 AuthJWT 中间件写入；后续所有 service 调用都显式携带
func actorID(c *gin.Context) uint {
	if v, ok := c.Get("userId"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, "invalid "+name))
		return 0, false
	}
	return uint(id), true
}
