package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"familytree-api/internal/core/cache"
	"familytree-api/internal/domain"
	"familytree-api/internal/service"
	"familytree-api/internal/storage"
)

const personCacheTTL = 5 * time.Minute

type PersonHandler struct {
	svc         *service.PersonService
	cache       *cache.Cache // 可为 nil（未配置 redis）
	store       *storage.LocalStore
	maxUploadMB int
}

func NewPersonHandler(svc *service.PersonService, c *cache.Cache, store *storage.LocalStore, maxUploadMB int) *PersonHandler {
	return &PersonHandler{svc: svc, cache: c, store: store, maxUploadMB: maxUploadMB}
}

func personCacheKey(id uint) string { return fmt.Sprintf("person:%d", id) }

// POST /api/person
func (h *PersonHandler) Create(c *gin.Context) {
	var in service.PersonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.Create(c.Request.Context(), actorID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

// PUT /api/person/:id
func (h *PersonHandler) Update(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	var in service.PersonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.svc.Update(c.Request.Context(), id, actorID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	h.invalidate(c.Request.Context(), id)
	ok(c, p)
}

// DELETE /api/person/:id
func (h *PersonHandler) Delete(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		fail(c, err)
		return
	}
	h.invalidate(c.Request.Context(), id)
	ok(c, gin.H{"message": "Person deleted successfully"})
}

// GET /api/person — 只列出调用者自己创建的
func (h *PersonHandler) List(c *gin.Context) {
	list, err := h.svc.ListMine(c.Request.Context(), actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, list)
}

// GET /api/person/:id — 按 id 读取，redis 读穿透缓存
func (h *PersonHandler) Get(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	ctx := c.Request.Context()
	if h.cache == nil {
		p, err := h.svc.Get(ctx, id)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, p)
		return
	}
	p, err := cache.GetOrLoadJSON[domain.Person](h.cache, ctx, personCacheKey(id), personCacheTTL,
		func(ctx context.Context) (*domain.Person, error) {
			return h.svc.Get(ctx, id)
		})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, p)
}

// POST /api/person/upload
func (h *PersonHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, err)
		return
	}
	if fh.Size > int64(h.maxUploadMB)<<20 {
		badRequest(c, fmt.Errorf("file exceeds %d MB", h.maxUploadMB))
		return
	}
	name, err := h.store.Store(fh)
	if err != nil {
		fail(c, err)
		return
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	ok(c, gin.H{"url": fmt.Sprintf("%s://%s/uploads/%s", scheme, c.Request.Host, name)})
}

func (h *PersonHandler) invalidate(ctx context.Context, id uint) {
	if h.cache != nil {
		h.cache.Del(ctx, personCacheKey(id))
	}
}
