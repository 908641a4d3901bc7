package handler

import (
	"github.com/gin-gonic/gin"

	"familytree-api/internal/service"
)

type RelationshipHandler struct {
	svc *service.RelationshipService
}

func NewRelationshipHandler(svc *service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{svc: svc}
}

// POST /api/relationship
func (h *RelationshipHandler) Add(c *gin.Context) {
	var in service.RelationshipInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	rel, err := h.svc.Add(c.Request.Context(), actorID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, rel)
}

// DELETE /api/relationship/:id
func (h *RelationshipHandler) Delete(c *gin.Context) {
	id, okID := pathID(c, "id")
	if !okID {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Relationship deleted successfully"})
}

// GET /api/relationship/person/:personId — 无向查询
func (h *RelationshipHandler) ForPerson(c *gin.Context) {
	personID, okID := pathID(c, "personId")
	if !okID {
		return
	}
	list, err := h.svc.ForPerson(c.Request.Context(), personID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, list)
}

// GET /api/relationship — 全局列表
func (h *RelationshipHandler) All(c *gin.Context) {
	list, err := h.svc.All(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, list)
}
