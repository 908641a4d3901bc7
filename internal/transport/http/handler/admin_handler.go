package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"familytree-api/internal/service"
)

type AdminHandler struct {
	svc *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler { return &AdminHandler{svc: svc} }

// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, users)
}

// PUT /api/admin/users/:userId/activate
func (h *AdminHandler) Activate(c *gin.Context) {
	userID, okID := pathID(c, "userId")
	if !okID {
		return
	}
	u, err := h.svc.ActivateUser(c.Request.Context(), userID, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "User " + u.Username + " activated successfully."})
}

// PUT /api/admin/users/:userId/deactivate
func (h *AdminHandler) Deactivate(c *gin.Context) {
	userID, okID := pathID(c, "userId")
	if !okID {
		return
	}
	u, err := h.svc.DeactivateUser(c.Request.Context(), userID, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "User " + u.Username + " deactivated successfully."})
}

// PUT /api/admin/users/:userId/role
func (h *AdminHandler) ChangeRole(c *gin.Context) {
	userID, okID := pathID(c, "userId")
	if !okID {
		return
	}
	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	u, err := h.svc.ChangeRole(c.Request.Context(), userID, in.Role, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "User " + u.Username + " role updated to " + in.Role})
}

// GET /api/admin/audit?offset=&limit=
func (h *AdminHandler) ListAudit(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	entries, total, err := h.svc.ListAudit(c.Request.Context(), offset, limit)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"total": total, "items": entries})
}
