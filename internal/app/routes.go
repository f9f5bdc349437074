package app

import (
	"net/http"

	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/cache"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/config"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/handlers"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/repo"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/service"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/static"
	"github.com/d-langelihlekhumalo/real-time-task-manager/internal/stream"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine and returns the seed
// service so the app can optionally seed demo data at boot.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, hub *stream.Hub) *service.SeedService {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	// /app (no slash) gets a trailing slash redirect from the router.
	r.StaticFS("/app", http.FS(static.FS()))

	api := r.Group("/api")

	taskRepo := repo.NewPGTaskRepo(db)
	noteRepo := repo.NewPGNoteRepo(db)
	activityRepo := repo.NewPGActivityRepo(db)

	taskCache := cache.NewTaskCache(rdb, cfg.Redis.DefaultTTL.Duration())

	activitySvc := service.NewActivityService(activityRepo, taskRepo, noteRepo)
	taskSvc := service.NewTaskService(taskRepo, activitySvc, hub, taskCache)
	noteSvc := service.NewNoteService(noteRepo, taskRepo, activitySvc, hub, taskCache)
	seedSvc := service.NewSeedService(taskRepo, noteRepo, activityRepo)

	registerTaskRoutes(api, handlers.NewTaskHandler(taskSvc))
	registerNoteRoutes(api, handlers.NewNoteHandler(noteSvc))
	registerDashboardRoutes(api, handlers.NewDashboardHandler(activitySvc))
	registerDemoRoutes(api, handlers.NewDemoHandler(seedSvc, hub))
	api.GET("/stream", handlers.NewStreamHandler(hub).Stream)

	return seedSvc
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Real-Time Task Manager API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
			"app":     "/app/",
			"stream":  "/api/stream",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/task", h.List)
	api.POST("/task", h.Create)
	api.GET("/task/:id", h.GetByID)
	api.PUT("/task/:id", h.Update)
	api.DELETE("/task/:id", h.Delete)
	api.PATCH("/task/:id/toggle-completion", h.ToggleCompletion)
}

func registerNoteRoutes(api *gin.RouterGroup, h *handlers.NoteHandler) {
	api.POST("/note", h.Create)
	api.GET("/note/:id", h.GetByID)
	api.PUT("/note/:id", h.Update)
	api.DELETE("/note/:id", h.Delete)
	api.GET("/note/task/:taskId", h.ListByTask)
}

func registerDashboardRoutes(api *gin.RouterGroup, h *handlers.DashboardHandler) {
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/dashboard/:count", h.GetRecentActivities)
}

func registerDemoRoutes(api *gin.RouterGroup, h *handlers.DemoHandler) {
	api.POST("/demo/seed", h.Seed)
	api.POST("/demo/reset", h.Reset)
	api.GET("/demo/info", h.Info)
}
