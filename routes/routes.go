package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/servihub/reports-api/controllers"
	"github.com/servihub/reports-api/middleware"
	"github.com/servihub/reports-api/stores"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, denylist *stores.SessionDenylist) {
	reportStore := stores.NewReportStore(db)

	authController := controllers.NewAuthController(db, denylist)
	reportController := controllers.NewReportController(reportStore)
	uploadController := controllers.NewUploadController()

	// Public entry point, also the redirect target for failed credentials
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "reports-api", "status": "ok"})
	})

	// Public routes
	r.POST("/login", authController.Login)
	r.POST("/logout", authController.Logout)
	r.GET("/auth", authController.Session)

	r.POST("/reports", reportController.CreateReport)
	r.GET("/reports", reportController.ListReports)
	r.PUT("/reports", reportController.ResolveReport)

	// Gated areas
	admin := r.Group("/admin")
	admin.Use(middleware.AccessGate(denylist))
	{
		admin.GET("/reports", reportController.AdminListReports)
	}

	user := r.Group("/user")
	user.Use(middleware.AccessGate(denylist))
	{
		user.GET("", authController.Me)
		user.GET("/me", authController.Me)
		user.POST("/uploads/evidence", uploadController.GetEvidenceUploadURL)
	}
}
