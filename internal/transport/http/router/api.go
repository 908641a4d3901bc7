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
	"familytree-api/internal/core/cache"
	"familytree-api/internal/service"
	"familytree-api/internal/storage"
	"familytree-api/internal/transport/http/handler"
	mdw "familytree-api/internal/transport/http/middleware"
)

// NewAPIEngine 用户端：注册/登录、人物图谱、关系边、图片上传
func NewAPIEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, c *cache.Cache, store *storage.LocalStore, maxUploadMB int) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", store.Dir)

	authH := handler.NewAuthHandler(service.NewAuthService(db, jwter, l))
	personH := handler.NewPersonHandler(service.NewPersonService(db), c, store, maxUploadMB)
	relH := handler.NewRelationshipHandler(service.NewRelationshipService(db))

	api := r.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)

	// 鉴权分组：操作者身份从这里进入上下文
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))

	authed.GET("/auth/me", authH.Me)

	person := authed.Group("/person")
	{
		person.POST("", personH.Create)
		person.GET("", personH.List)
		person.GET("/:id", personH.Get)
		person.PUT("/:id", personH.Update)
		person.DELETE("/:id", personH.Delete)
		person.POST("/upload", personH.Upload)
	}

	rel := authed.Group("/relationship")
	{
		rel.POST("", relH.Add)
		rel.GET("", relH.All)
		rel.GET("/person/:personId", relH.ForPerson)
		rel.DELETE("/:id", relH.Delete)
	}

	return r
}
