package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"familytree-api/internal/core/auth"
	"familytree-api/internal/domain"
	"familytree-api/internal/service"
	"familytree-api/internal/transport/http/handler"
	mdw "familytree-api/internal/transport/http/middleware"
)

// NewAdminEngine 管理端：用户管理、角色、审计流水（统一要求 ADMIN/SUPERADMIN）
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(100, 200),
		mdw.ConcurrencyLimit(100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminSvc := service.NewAdminService(db, l)
	adminH := handler.NewAdminHandler(adminSvc)
	roleH := handler.NewRoleHandler(adminSvc)

	api := r.Group("/api")
	requireAdmin := mdw.AuthJWT(jwter, domain.RoleAdmin, domain.RoleSuperAdmin)

	admin := api.Group("/admin", requireAdmin)
	{
		admin.GET("/users", adminH.ListUsers)
		admin.PUT("/users/:userId/activate", adminH.Activate)
		admin.PUT("/users/:userId/deactivate", adminH.Deactivate)
		admin.PUT("/users/:userId/role", adminH.ChangeRole)
		admin.GET("/audit", adminH.ListAudit)
	}

	roles := api.Group("/roles", requireAdmin)
	{
		roles.POST("", roleH.Create)
		roles.POST("/:roleId/users/:userId", roleH.Assign)
	}

	return r
}
