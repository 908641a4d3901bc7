package handler

import (
	"github.com/gin-gonic/gin"

	"familytree-api/internal/service"
)

type RoleHandler struct {
	svc *service.AdminService
}

func NewRoleHandler(svc *service.AdminService) *RoleHandler { return &RoleHandler{svc: svc} }

// POST /api/roles
func (h *RoleHandler) Create(c *gin.Context) {
	var in struct {
		Name string `json:"name" binding:"required,max=32"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	role, err := h.svc.CreateRole(c.Request.Context(), in.Name)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, role)
}

// POST /api/roles/:roleId/users/:userId
func (h *RoleHandler) Assign(c *gin.Context) {
	roleID, okID := pathID(c, "roleId")
	if !okID {
		return
	}
	userID, okID := pathID(c, "userId")
	if !okID {
		return
	}
	u, err := h.svc.AssignRole(c.Request.Context(), roleID, userID, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"message": "Role assigned to user " + u.Username})
}
