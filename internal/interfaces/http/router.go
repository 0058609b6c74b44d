package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Brewlog-api/internal/application/auth"
	"github.com/jhoicas/Brewlog-api/internal/application/controller"
	"github.com/jhoicas/Brewlog-api/internal/application/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	Denylist   *auth.Denylist
	Validator  *validation.Validator
	Core       *controller.Core
	Beans      *controller.BeanController
	Roasteries *controller.RoasteryController
	Grinders   *controller.GrinderController
	Brewers    *controller.BrewerController
	Brews      *controller.BrewController
	Profile    *controller.ProfileController
	JWTSecret  string
	Logger     zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Logger))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Denylist), SubmissionKey())
	protected.Post("/auth/logout", authHandler.Logout)

	profileHandler := NewProfileHandler(deps.Profile)
	protected.Get("/me", profileHandler.Me)
	protected.Put("/me", profileHandler.Update)
	protected.Put("/me/password", authHandler.ChangePassword)

	formHandler := NewFormHandler(deps.Core)
	protected.Get("/forms/:form/draft", formHandler.Draft)

	// Beans + fechas de tueste
	beanHandler := NewBeanHandler(deps.Beans)
	beans := protected.Group("/beans")
	beans.Get("/", beanHandler.List)
	beans.Post("/", beanHandler.Create)
	beans.Get("/:id", beanHandler.GetByID)
	beans.Put("/:id", beanHandler.Update)
	beans.Delete("/:id", beanHandler.Delete)
	beans.Get("/:id/roast-dates", beanHandler.ListRoastDates)
	beans.Post("/:id/roast-dates", beanHandler.AddRoastDate)
	beans.Put("/:id/roast-dates/:roastDateID", beanHandler.UpdateRoastDate)
	beans.Delete("/:id/roast-dates/:roastDateID", beanHandler.RemoveRoastDate)

	// Equipo
	roasteryHandler := NewRoasteryHandler(deps.Roasteries)
	roasteries := protected.Group("/roasteries")
	roasteries.Get("/", roasteryHandler.List)
	roasteries.Post("/", roasteryHandler.Create)
	roasteries.Get("/:id", roasteryHandler.GetByID)
	roasteries.Put("/:id", roasteryHandler.Update)
	roasteries.Delete("/:id", roasteryHandler.Delete)

	grinderHandler := NewGrinderHandler(deps.Grinders)
	grinders := protected.Group("/grinders")
	grinders.Get("/", grinderHandler.List)
	grinders.Post("/", grinderHandler.Create)
	grinders.Get("/:id", grinderHandler.GetByID)
	grinders.Put("/:id", grinderHandler.Update)
	grinders.Delete("/:id", grinderHandler.Delete)

	brewerHandler := NewBrewerHandler(deps.Brewers)
	brewers := protected.Group("/brewers")
	brewers.Get("/", brewerHandler.List)
	brewers.Post("/", brewerHandler.Create)
	brewers.Get("/:id", brewerHandler.GetByID)
	brewers.Put("/:id", brewerHandler.Update)
	brewers.Delete("/:id", brewerHandler.Delete)

	// Brews ("/new" antes de "/:id")
	brewHandler := NewBrewHandler(deps.Brews)
	brews := protected.Group("/brews")
	brews.Get("/", brewHandler.List)
	brews.Get("/new", brewHandler.New)
	brews.Post("/", brewHandler.Create)
	brews.Get("/:id", brewHandler.GetByID)
	brews.Put("/:id", brewHandler.Update)
	brews.Delete("/:id", brewHandler.Delete)
	brews.Post("/:id/analysis", brewHandler.Analyze)
	brews.Get("/:id/card.pdf", brewHandler.Card)
}
