package routes

import (
	"github.com/gin-gonic/gin"

	"gestalba/internal/handlers"
	"gestalba/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret string,
	userHandler *handlers.UserHandler,
	verifyHandler *handlers.VerifyHandler,
	clientHandler *handlers.ClientHandler,
	projectHandler *handlers.ProjectHandler,
	noteHandler *handlers.DeliveryNoteHandler,
	companyHandler *handlers.CompanyHandler,
	logoHandler *handlers.LogoHandler,
) *gin.Engine {

	api := r.Group("/api")

	// ---- public
	api.POST("/user/register", userHandler.Register)
	api.POST("/user/login", userHandler.Login)

	// ---- protected
	api.Use(middleware.AuthMiddleware(jwtSecret))

	api.POST("/verification", verifyHandler.VerifyUser)
	api.PATCH("/user/complete-info", userHandler.CompleteInfo)
	api.GET("/user/me", userHandler.Me)

	// CLIENTS
	client := api.Group("/client")
	{
		client.POST("/", clientHandler.Create)
		client.PATCH("/", clientHandler.Update)
		client.GET("/", clientHandler.List)
		client.GET("/archived/list", clientHandler.ListArchived)
		client.GET("/:id", clientHandler.Get)
		client.PATCH("/:id", clientHandler.Archive)
		client.PATCH("/restore/:id", clientHandler.Restore)
		client.DELETE("/:id", clientHandler.Delete)
	}

	// PROJECTS
	project := api.Group("/project")
	{
		project.POST("/", projectHandler.Create)
		project.PATCH("/archive/:id", projectHandler.Archive)
		project.PATCH("/restore/:id", projectHandler.Restore)
		project.PATCH("/:id", projectHandler.Update)
		project.GET("/", projectHandler.List)
		project.GET("/archived/list", projectHandler.ListArchived)
		project.GET("/:id", projectHandler.Get)
		project.DELETE("/:id", projectHandler.Delete)
	}

	// DELIVERY NOTES
	note := api.Group("/deliverynote")
	{
		note.POST("/", noteHandler.Create)
		note.GET("/", noteHandler.List)
		note.GET("/pdf/:id", noteHandler.PDF)
		note.GET("/:id", noteHandler.Get)
		note.POST("/sign/:id", noteHandler.Sign)
		note.DELETE("/:id", noteHandler.Delete)
	}

	// COMPANIES
	company := api.Group("/company")
	{
		company.PUT("/create-company", companyHandler.CreateOrJoin)
		company.PATCH("/add-user-company", companyHandler.AddUser)
		company.GET("/my-company", companyHandler.MyCompany)
	}

	// LOGOS
	api.POST("/logo", logoHandler.Upload)

	return r
}
