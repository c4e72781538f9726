package routes

import (
	"time"

	"github.com/Scoheart/lostfound-backend/internal/config"
	"github.com/Scoheart/lostfound-backend/internal/handlers"
	"github.com/Scoheart/lostfound-backend/internal/middleware"
	"github.com/Scoheart/lostfound-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers bundles everything Setup needs to mount the API.
type Handlers struct {
	Auth          *handlers.AuthHandler
	User          *handlers.UserHandler
	Admin         *handlers.AdminHandler
	Resident      *handlers.ResidentHandler
	LostItem      *handlers.LostItemHandler
	FoundItem     *handlers.FoundItemHandler
	Claim         *handlers.ClaimHandler
	Report        *handlers.ReportHandler
	ItemComment   *handlers.ItemCommentHandler
	PostComment   *handlers.PostCommentHandler
	Post          *handlers.PostHandler
	Announcement  *handlers.AnnouncementHandler
	Upload        *handlers.UploadHandler
	System        *handlers.SystemHandler
}

// Setup mounts all routes. Auth endpoints get a tighter rate limit than the
// rest of the API to slow down credential stuffing.
func Setup(app *fiber.App, cfg *config.Config, h *Handlers) {
	app.Get("/health", handlers.Health)
	app.Static(cfg.UploadBaseURL, cfg.UploadDir)

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:               60,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))

	jwt := middleware.JWTProtected(cfg)
	adminOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleSysadmin)
	sysadminOnly := middleware.RequireRoles(models.RoleSysadmin)

	// Auth
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)

	// One-time setup
	api.Post("/system/init-admin", h.System.InitAdmin)

	// Current user
	users := api.Group("/users")
	users.Get("/me", jwt, h.User.Me)
	users.Put("/me", jwt, h.User.UpdateMe)
	users.Put("/me/password", jwt, h.User.ChangePassword)
	users.Post("/me/avatar", jwt, h.User.UploadAvatar)
	users.Get("/:id", h.User.GetByID)

	// Lost items
	lost := api.Group("/lost-items")
	lost.Get("/", h.LostItem.List)
	lost.Get("/my", jwt, h.LostItem.ListMine)
	lost.Get("/:id", h.LostItem.Get)
	lost.Post("/", jwt, h.LostItem.Create)
	lost.Put("/:id", jwt, h.LostItem.Update)
	lost.Put("/:id/status", jwt, h.LostItem.UpdateStatus)
	lost.Delete("/:id", jwt, h.LostItem.Delete)

	// Found items and their claims
	found := api.Group("/found-items")
	found.Get("/", h.FoundItem.List)
	found.Get("/my", jwt, h.FoundItem.ListMine)
	found.Get("/:id", h.FoundItem.Get)
	found.Post("/", jwt, h.FoundItem.Create)
	found.Put("/:id", jwt, h.FoundItem.Update)
	found.Put("/:id/status", jwt, h.FoundItem.UpdateStatus)
	found.Delete("/:id", jwt, h.FoundItem.Delete)
	found.Post("/:id/claims", jwt, h.Claim.Apply)
	found.Get("/:id/claims", jwt, h.Claim.ListByItem)

	// Claims
	claims := api.Group("/claims", jwt)
	claims.Get("/my", h.Claim.ListMine)
	claims.Get("/received", h.Claim.ListReceived)
	claims.Get("/:id", h.Claim.Get)
	claims.Put("/:id/approve", h.Claim.Approve)
	claims.Put("/:id/reject", h.Claim.Reject)

	// Reports
	reports := api.Group("/reports", jwt)
	reports.Post("/", h.Report.Create)
	reports.Get("/my", h.Report.ListMine)

	// Comments
	comments := api.Group("/comments")
	comments.Post("/items", jwt, h.ItemComment.Create)
	comments.Get("/items/my", jwt, h.ItemComment.ListMine)
	comments.Get("/items/:itemType/:itemId", h.ItemComment.ListByItem)
	comments.Delete("/items/:id", jwt, h.ItemComment.Delete)
	comments.Post("/posts", jwt, h.PostComment.Create)
	comments.Get("/posts/my", jwt, h.PostComment.ListMine)
	comments.Get("/posts/:postId", h.PostComment.ListByPost)
	comments.Delete("/posts/:id", jwt, h.PostComment.Delete)

	// Forum posts
	posts := api.Group("/posts")
	posts.Get("/", h.Post.List)
	posts.Get("/my", jwt, h.Post.ListMine)
	posts.Get("/user/:userId", h.Post.ListByUser)
	posts.Get("/:id", h.Post.Get)
	posts.Post("/", jwt, h.Post.Create)
	posts.Put("/:id", jwt, h.Post.Update)
	posts.Delete("/:id", jwt, h.Post.Delete)

	// Announcements (public read)
	api.Get("/announcements", h.Announcement.ListPublic)
	api.Get("/announcements/:id", h.Announcement.GetPublic)

	// Uploads
	api.Post("/upload/image", jwt, h.Upload.Upload)

	// Community admin panel
	admin := api.Group("/admin", jwt, adminOnly)
	admin.Get("/residents", h.Resident.List)
	admin.Get("/residents/:id", h.Resident.Get)
	admin.Put("/residents/:id/status", h.Resident.UpdateStatus)
	admin.Put("/residents/:id/lock", h.Resident.Lock)
	admin.Put("/residents/:id/unlock", h.Resident.Unlock)
	admin.Get("/claims", h.Claim.ListAll)
	admin.Delete("/claims/:id", h.Claim.Delete)
	admin.Get("/reports", h.Report.ListAdmin)
	admin.Get("/reports/item/:type/:itemId", h.Report.ListByItem)
	admin.Get("/reports/:id", h.Report.Get)
	admin.Put("/reports/:id/resolve", h.Report.Resolve)
	admin.Post("/announcements", h.Announcement.Create)
	admin.Get("/announcements", h.Announcement.ListAdmin)
	admin.Get("/announcements/my", h.Announcement.ListMine)
	admin.Get("/announcements/:id", h.Announcement.GetAdmin)
	admin.Put("/announcements/:id", h.Announcement.Update)
	admin.Delete("/announcements/:id", h.Announcement.Delete)

	// Sysadmin panel
	sysadmin := api.Group("/sysadmin", jwt, sysadminOnly)
	sysadmin.Post("/admins", h.Admin.RegisterAdmin)
	sysadmin.Get("/admins", h.Admin.ListAdmins)
	sysadmin.Delete("/admins/:id", h.Admin.DeleteAdmin)
	sysadmin.Get("/users", h.Admin.ListUsers)
	sysadmin.Post("/users", h.Admin.CreateUser)
	sysadmin.Get("/users/:id", h.Admin.GetUser)
	sysadmin.Put("/users/:id", h.Admin.UpdateUser)
	sysadmin.Put("/users/:id/status", h.Admin.UpdateUserStatus)
	sysadmin.Put("/users/:id/password", h.Admin.ResetUserPassword)
	sysadmin.Delete("/users/:id", h.Admin.DeleteUser)
}
