package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/logger"
	"performer-directory-backend/internal/middleware"
)

// RouterDeps carries everything NewRouter mounts. DB may be nil when the
// server runs against the hosted REST catalog only.
type RouterDeps struct {
	Log  *zap.Logger
	Auth gin.HandlerFunc
	// Admin must run after Auth.
	Admin gin.HandlerFunc
	DB    Pinger

	Reference *ReferenceHandler
	Profiles  *ProfilesHandler
	Images    *ImagesHandler
	Inquiries *InquiriesHandler
	Listings  *ListingsHandler
	Sessions  *AuthHandler
	Checkout  *CheckoutHandler
	Webhook   *WebhookHandler
	AdminDesk *AdminHandler
	Relays    *RelaysHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(d.Log))

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadyHandler(d.DB))

	api := router.Group("/api/v1")

	// Public
	api.GET("/categories", d.Reference.Categories)
	api.GET("/event-types", d.Reference.EventTypes)
	api.GET("/travel-radii", d.Reference.TravelRadii)
	api.GET("/locations", d.Reference.Locations)
	api.GET("/captcha", d.Inquiries.NewCaptcha)

	api.GET("/profiles", d.Profiles.ListProfiles)
	api.GET("/profiles/:profile_id", d.Profiles.GetProfile)
	api.GET("/profiles/:profile_id/images", d.Images.ListImages)
	api.POST("/profiles/:profile_id/inquiries", d.Inquiries.SubmitInquiry)
	api.POST("/free-listings", d.Listings.ApplyFreeListing)

	api.POST("/auth/sign-in", d.Sessions.SignIn)
	api.POST("/auth/refresh", d.Sessions.Refresh)

	// Webhook (no auth, uses HMAC)
	api.POST("/webhooks/payments", d.Webhook.HandlePaymentWebhook)

	// Authenticated
	authed := api.Group("")
	authed.Use(d.Auth)

	authed.GET("/me", d.Sessions.Me)
	authed.GET("/me/profile", d.Profiles.GetMyProfile)
	authed.POST("/me/profile", d.Profiles.CreateMyProfile)
	authed.PUT("/me/profile", d.Profiles.UpdateMyProfile)

	authed.POST("/profiles/:profile_id/images", d.Images.UploadImages)
	authed.DELETE("/profiles/:profile_id/images/:image_id", d.Images.DeleteImage)
	authed.POST("/profiles/:profile_id/images/reorder", d.Images.ReorderImages)
	authed.POST("/profiles/:profile_id/images/:image_id/move-up", d.Images.MoveImageUp)
	authed.POST("/profiles/:profile_id/images/:image_id/move-down", d.Images.MoveImageDown)

	authed.POST("/checkout", d.Checkout.CreateCheckoutSession)

	// Admin
	admin := authed.Group("/admin")
	admin.Use(d.Admin)

	admin.PUT("/profiles/:profile_id", d.Profiles.UpdateProfile)
	admin.GET("/messages", d.AdminDesk.ListMessages)
	admin.POST("/messages/:message_id/read", d.AdminDesk.MarkMessageRead)
	admin.DELETE("/messages/:message_id", d.AdminDesk.DeleteMessage)
	admin.GET("/free-listings", d.AdminDesk.ListFreeListings)
	admin.POST("/free-listings/:request_id/approve", d.AdminDesk.ApproveFreeListing)
	admin.POST("/free-listings/:request_id/reject", d.AdminDesk.RejectFreeListing)

	// Email relays
	relays := router.Group("/functions/v1")
	relays.Use(middleware.RelayCORS())

	relays.OPTIONS("/send-contact-email", noContent)
	relays.POST("/send-contact-email", d.Relays.SendContactEmail)
	relays.OPTIONS("/send-free-listing-email", noContent)
	relays.POST("/send-free-listing-email", d.Relays.SendFreeListingEmail)

	return router
}

// noContent is never reached; RelayCORS answers preflights first.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
