package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yeremiapane/littlelemon/config"
	"github.com/yeremiapane/littlelemon/controllers"
	"github.com/yeremiapane/littlelemon/floor"
	"github.com/yeremiapane/littlelemon/middlewares"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/services"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Options carries the shared components the routes are wired to.
type Options struct {
	Config   *config.Config
	Ledger   *services.ReservationLedger
	Hub      *floor.Hub
	Gatherer prometheus.Gatherer
}

func SetupRouter(db *gorm.DB, opts Options) *gin.Engine {
	cfg := opts.Config
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders(cfg.App.IsProd()))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(middlewares.NewRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst).RateLimit())

	catalog := services.NewCatalogService(db)
	tables := services.NewTableService(db)
	availability := services.NewAvailabilityService(db)

	userCtrl := controllers.NewUserController(db)
	categoryCtrl := controllers.NewCategoryController(catalog)
	menuCtrl := controllers.NewMenuController(catalog)
	tableCtrl := controllers.NewTableController(tables, availability)
	reservationCtrl := controllers.NewReservationController(opts.Ledger)
	adminCtrl := controllers.NewAdminController(opts.Ledger)
	floorCtrl := controllers.NewFloorController(opts.Hub, cfg.CORS.AllowedOrigins)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// Login dan register dibatasi lebih ketat
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter(cfg.RateLimit.AuthPerMinute).RateLimit())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Catalog and floor plan are readable without an account
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
	r.GET("/menu", menuCtrl.GetAllMenus)
	r.GET("/menu/by-category", menuCtrl.GetMenusByCategory)
	r.GET("/menu/:menu_id", menuCtrl.GetMenuByID)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/available", tableCtrl.FindAvailableTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)

	r.GET("/ws/floor", middlewares.WebSocketAuthMiddleware(models.RoleStaff), floorCtrl.FloorHandler)

	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)

		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.GET("/reservations", reservationCtrl.ListReservations)
		auth.GET("/reservations/future", reservationCtrl.ListFutureReservations)
		auth.GET("/reservations/:id", reservationCtrl.GetReservation)
		auth.PUT("/reservations/:id", reservationCtrl.UpdateReservation)
		auth.DELETE("/reservations/:id", reservationCtrl.CancelReservation)
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.RequireRole(models.RoleStaff))
	{
		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
		admin.POST("/tables/reconcile", adminCtrl.ReconcileTables)

		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.POST("/menu", menuCtrl.CreateMenu)
		admin.PATCH("/menu/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menu/:menu_id", menuCtrl.DeleteMenu)

		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		admin.POST("/users", middlewares.RequireRole(models.RoleAdmin), userCtrl.CreateUser)
	}

	return r
}
