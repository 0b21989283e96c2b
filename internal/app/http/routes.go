package routes

import (
	adminapi "rental-app/internal/api/admin"
	"rental-app/internal/api/amenities"
	authapi "rental-app/internal/api/auth"
	"rental-app/internal/api/contact"
	"rental-app/internal/api/content"
	"rental-app/internal/api/files"
	"rental-app/internal/api/properties"
	siteapi "rental-app/internal/api/site"
	"rental-app/internal/api/users"
	"rental-app/internal/app/http/middleware"
	"rental-app/internal/domain/access"
	"rental-app/internal/domain/media"
	"rental-app/internal/infra/tokens"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators handlers need besides the global database.
type Deps struct {
	Issuer         *tokens.Issuer
	Files          properties.FileStore
	URLs           media.URLBuilder
	MaxUploadBytes int64
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	props := &properties.Handler{Files: d.Files, URLs: d.URLs, MaxUploadBytes: d.MaxUploadBytes}
	uploads := &files.Handler{Files: d.Files, URLs: d.URLs, MaxUploadBytes: d.MaxUploadBytes}
	auth := &authapi.Handler{Issuer: d.Issuer}
	perm := middleware.RequirePermission

	api := r.Group("/api")
	api.Use(middleware.Locale())

	// Public
	api.GET("/properties", props.ListPublished)
	api.GET("/properties/search", props.Search)
	api.GET("/properties/featured", props.Featured)
	api.GET("/properties/check-slug", props.CheckSlug)
	api.GET("/properties/:slug", props.GetBySlug)

	api.GET("/amenities", amenities.ListAmenities)
	api.GET("/amenities/:id", amenities.GetAmenity)

	api.GET("/content", content.ListPublished)
	api.GET("/content/:slug", content.GetBySlug)

	api.GET("/company-info", siteapi.GetCompanyInfo)
	api.GET("/company-info/:key", siteapi.GetCompanyInfoValue)

	api.POST("/contact", middleware.SanitizeAndCleanInputMiddleware(), contact.Submit)

	api.POST("/auth/login", auth.Login)
	api.POST("/auth/refresh", auth.Refresh)
	api.POST("/auth/logout", auth.Logout)

	// Authenticated
	authed := api.Group("/")
	authed.Use(middleware.AuthMiddleware(d.Issuer))
	authed.GET("/auth/me", users.GetCurrentUser)
	authed.PUT("/auth/change-password", users.ChangeMyPassword)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(d.Issuer))

	admin.GET("/analytics/dashboard", perm(access.PermDashboard), adminapi.Dashboard)

	ap := admin.Group("/properties")
	ap.GET("", perm(access.PermListingsEdit), props.AdminList)
	ap.GET("/check-slug", perm(access.PermListingsEdit), props.CheckSlug)
	ap.GET("/:id", perm(access.PermListingsEdit), props.AdminGet)
	ap.POST("", perm(access.PermListingsEdit), props.Create)
	ap.PUT("/:id", perm(access.PermListingsEdit), props.Update)
	ap.DELETE("/:id", perm(access.PermListingsDelete), props.Delete)
	ap.DELETE("/:id/purge", perm(access.PermListingsPurge), props.Purge)
	ap.POST("/:id/duplicate", perm(access.PermListingsEdit), props.Duplicate)
	ap.POST("/:id/duplicate/batch", perm(access.PermListingsEdit), props.DuplicateBatch)

	ap.GET("/:id/images", perm(access.PermListingsEdit), props.ListImages)
	ap.POST("/:id/images", perm(access.PermListingsEdit), props.UploadImage)
	ap.DELETE("/:id/images/:imageId", perm(access.PermListingsEdit), props.DeleteImage)
	ap.PUT("/:id/images/:imageId/sort-order", perm(access.PermListingsEdit), props.UpdateImageSortOrder)
	ap.PUT("/:id/images/:imageId/cover", perm(access.PermListingsEdit), props.SetCoverImage)

	admin.POST("/files/upload", perm(access.PermListingsEdit), uploads.Upload)
	admin.DELETE("/files", perm(access.PermListingsEdit), uploads.Delete)

	ac := admin.Group("/content")
	ac.GET("", perm(access.PermContentEdit), content.AdminList)
	ac.GET("/check-slug", perm(access.PermContentEdit), content.CheckSlug)
	ac.GET("/:id", perm(access.PermContentEdit), content.AdminGet)
	ac.POST("", perm(access.PermContentEdit), content.Create)
	ac.PUT("/:id", perm(access.PermContentEdit), content.Update)
	ac.DELETE("/:id", perm(access.PermContentDelete), content.Delete)

	as := admin.Group("/settings")
	as.GET("", perm(access.PermSettings), siteapi.ListSettings)
	as.POST("/initialize", perm(access.PermSettingsInit), siteapi.InitializeDefaults)
	as.GET("/:key", perm(access.PermSettings), siteapi.GetSetting)
	as.PUT("/:key", perm(access.PermSettings), siteapi.UpsertSetting)

	am := admin.Group("/messages")
	am.Use(perm(access.PermMessages))
	am.GET("", contact.ListAll)
	am.GET("/unhandled", contact.ListUnhandled)
	am.GET("/handled", contact.ListHandled)
	am.GET("/search", contact.Search)
	am.GET("/:id", contact.Get)
	am.PUT("/:id/handle", contact.MarkHandled)

	au := admin.Group("/users")
	au.Use(perm(access.PermUsers))
	au.GET("", users.ListUsers)
	au.GET("/stats", users.Stats)
	au.GET("/check-email", users.CheckEmail)
	au.GET("/:id", users.GetUser)
	au.POST("", users.CreateUser)
	au.PUT("/:id", users.UpdateUser)
	au.PUT("/:id/activate", users.ActivateUser)
	au.PUT("/:id/deactivate", users.DeactivateUser)
	au.PUT("/:id/password", users.ResetPassword)

	admin.POST("/auth/tokens/purge", perm(access.PermUsers), auth.PurgeTokens)
}
