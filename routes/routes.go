package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/cybersecclub/club-site-go/config"
	controllers "github.com/cybersecclub/club-site-go/controllers"
	middleware "github.com/cybersecclub/club-site-go/middleware"
	repositories "github.com/cybersecclub/club-site-go/repositories"
	services "github.com/cybersecclub/club-site-go/services"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	users := repositories.NewMongoUserDirectory(cfg.Collection("users"))
	blogSvc := services.NewBlogService(
		repositories.NewMongoBlogRepository(cfg.Collection("blogs")),
		users,
		services.NewEmailNotifier(),
	)
	eventSvc := services.NewEventService(
		repositories.NewMongoEventRepository(cfg.Collection("events")),
	)

	auth := middleware.AuthMiddleware(cfg)
	admin := middleware.AdminOnly()

	api := r.Group("/api")

	// public
	api.POST("/auth/register", controllers.Register(cfg))
	api.POST("/auth/login", controllers.Login(cfg))
	api.POST("/auth/refresh", controllers.RefreshToken(cfg))

	u := api.Group("/users")
	{
		u.GET("/profile", auth, controllers.GetProfile(cfg))
		u.PUT("/update", auth, controllers.UpdateProfile(cfg))

		u.GET("", auth, admin, controllers.ListUsers(cfg))
		u.PUT("/:id", auth, admin, controllers.UpdateUserAdmin(cfg))
	}

	blogs := api.Group("/blogs")
	{
		blogs.GET("", controllers.ListBlogs(blogSvc))
		blogs.GET("/user/:id", controllers.ListUserBlogs(blogSvc))

		blogs.GET("/user", auth, controllers.ListMyBlogs(blogSvc))
		blogs.POST("", auth, controllers.CreateBlog(blogSvc))
		blogs.POST("/:id/like", auth, controllers.LikeBlog(blogSvc))
		blogs.POST("/:id/comment", auth, controllers.CommentBlog(blogSvc))
		blogs.DELETE("/:id/comment/:commentId", auth, controllers.DeleteComment(blogSvc))

		blogs.GET("/pending", auth, admin, controllers.ListPendingBlogs(blogSvc))
		blogs.PUT("/moderate/:id", auth, admin, controllers.ModerateBlog(blogSvc))

		blogs.GET("/:id", controllers.GetBlog(blogSvc))
	}

	events := api.Group("/events")
	{
		events.GET("", controllers.ListEvents(eventSvc))

		events.POST("", auth, admin, controllers.CreateEvent(eventSvc))
		events.GET("/pending", auth, admin, controllers.ListPendingEvents(eventSvc))
		events.PUT("/moderate/:id", auth, admin, controllers.ModerateEvent(eventSvc))
	}
}
