package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brewcrew/cafe-backend/internal/handlers"
	authmw "github.com/brewcrew/cafe-backend/internal/middleware/auth"
)

type Deps struct {
	MenuHandler      *handlers.MenuHandler
	UserHandler      *handlers.UserHandler
	OrderHandler     *handlers.OrderHandler
	FavouriteHandler *handlers.FavouriteHandler
	SearchHandler    *handlers.SearchHandler
	Auth             *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	menu := e.Group("/menu")
	menu.GET("", d.MenuHandler.GetMenu)
	menu.GET("/categories", d.MenuHandler.GetCategories)
	menu.GET("/categories/:categoryId", d.MenuHandler.GetItemsByCategory)
	menu.GET("/:id", d.MenuHandler.GetItem)
	if d.SearchHandler != nil {
		menu.GET("/search", d.SearchHandler.SearchItems)
	}

	menuAdmin := menu.Group("", d.Auth.RequireAdmin)
	menuAdmin.POST("/create/category", d.MenuHandler.CreateCategory)
	menuAdmin.POST("/create/item", d.MenuHandler.CreateItem)
	menuAdmin.PATCH("/update/item/:id", d.MenuHandler.UpdateItem)
	menuAdmin.DELETE("/delete/item/:id", d.MenuHandler.DeleteItem)
	menuAdmin.DELETE("/delete/category/:id", d.MenuHandler.DeleteCategory)

	users := e.Group("/users")
	users.GET("", d.UserHandler.GetUsers)
	users.POST("/signup", d.UserHandler.Signup)
	users.POST("/login", d.UserHandler.Login)
	users.PATCH("/update", d.UserHandler.UpdateProfile, d.Auth.RequireAuth)
	users.DELETE("/delete", d.UserHandler.DeleteProfile, d.Auth.RequireAuth)

	orders := e.Group("/orders", d.Auth.RequireAuth)
	orders.POST("/create", d.OrderHandler.CreateOrder)
	orders.GET("", d.OrderHandler.GetOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)

	favourites := e.Group("/favourites", d.Auth.RequireAuth)
	favourites.GET("", d.FavouriteHandler.GetFavourites)
	favourites.POST("/:itemId", d.FavouriteHandler.AddFavourite)
	favourites.DELETE("/:itemId", d.FavouriteHandler.RemoveFavourite)
}
