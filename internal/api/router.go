package api

import (
	"SamuraiArchive/internal/config"
	"SamuraiArchive/internal/metrics"
	"SamuraiArchive/internal/repository"
	"SamuraiArchive/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRouter 组装仓储、服务与全部路由
func NewRouter(cfg *config.Config, db *gorm.DB, logger *logrus.Logger, m *metrics.Metrics) *gin.Engine {
	useJSONFieldNames()

	store := repository.NewStore(db)
	generator := service.NewTimelineGenerator(store, logger, m)
	hooks := service.NewTimelineHooks(store, generator, logger, m)
	authService := service.NewAuthService(store, cfg.Auth.BcryptCost, logger)
	userService := service.NewUserService(store, cfg.Auth.BcryptCost, logger)

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), m.GinMiddleware(), CORS(cfg.HTTP.AllowOrigins))

	// 注册 pprof，仅 debug 模式
	if cfg.Server.Mode == gin.DebugMode {
		pprof.Register(r)
	}

	r.GET("/health", NewHealthHandler(store, logger).Health)
	r.GET("/metrics", m.Handler())

	cached := []gin.HandlerFunc{CacheControl(cfg.HTTP.CacheMaxAge)}
	authed := []gin.HandlerFunc{RequireUser(authService, logger)}
	admin := []gin.HandlerFunc{RequireUser(authService, logger), RequireAdmin()}

	g := r.Group("/api")

	// 实体 CRUD：读公开，写需要登录
	NewResourceHandler[service.SamouraiInput, service.SamouraiView]("samourai", service.NewSamouraiService(store, hooks, logger), logger).Register(g, "/samourais", cached, authed)
	NewResourceHandler[service.BattleInput, service.BattleView]("battle", service.NewBattleService(store, hooks, logger), logger).Register(g, "/battles", cached, authed)
	NewResourceHandler[service.ClanInput, service.ClanView]("clan", service.NewClanService(store, logger), logger).Register(g, "/clans", cached, authed)
	NewResourceHandler[service.WeaponInput, service.WeaponView]("weapon", service.NewWeaponService(store, logger), logger).Register(g, "/weapons", cached, authed)
	NewResourceHandler[service.StyleInput, service.StyleView]("style", service.NewStyleService(store, logger), logger).Register(g, "/styles", nil, authed)
	NewResourceHandler[service.LocationInput, service.LocationView]("location", service.NewLocationService(store, logger), logger).Register(g, "/locations", nil, authed)

	// 时间线
	timelineHandler := NewTimelineHandler(service.NewTimelineService(store), generator, logger)
	g.GET("/timeline", timelineHandler.List)
	g.GET("/timeline/:id", timelineHandler.Get)
	g.POST("/timeline/generate", chain(admin, timelineHandler.Generate)...)
	g.POST("/timeline/historical", chain(admin, timelineHandler.Historical)...)

	// 认证与个人资料
	authHandler := NewAuthHandler(authService, userService, logger)
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.GET("/profile", chain(authed, authHandler.Profile)...)
	g.PUT("/profile", chain(authed, authHandler.UpdateProfile)...)

	// 用户管理（管理员或本人）
	userHandler := NewUserHandler(userService, logger)
	users := g.Group("/users", authed...)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.PATCH("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// 收藏
	favoriteHandler := NewFavoriteHandler(service.NewFavoriteService(store, logger), logger)
	favorites := g.Group("/favorites", authed...)
	favorites.GET("", favoriteHandler.List)
	favorites.POST("", favoriteHandler.Add)
	favorites.POST("/toggle", favoriteHandler.Toggle)
	favorites.GET("/check", favoriteHandler.Check)
	favorites.DELETE("/:id", favoriteHandler.Delete)

	return r
}
