package echoServer

import (
	"equiprental/app/echoServer/controller/approval"
	"equiprental/app/echoServer/controller/auth"
	"equiprental/app/echoServer/controller/category"
	"equiprental/app/echoServer/controller/favorite"
	"equiprental/app/echoServer/controller/item"
	"equiprental/app/echoServer/controller/rental"
	"equiprental/app/echoServer/controller/upload"
	"equiprental/service/policy"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth      *auth.Controller
	Item      *item.Controller
	Category  *category.Controller
	Favorite  *favorite.Controller
	Rental    *rental.Controller
	Approval  *approval.Controller
	Upload    *upload.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	// Auth
	g := e.Group("/v1")
	g.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	g.Use(ExtractIdentity())

	manage := RequireAction(policy.ActionCatalogWrite)
	oversee := RequireAction(policy.ActionRentalViewAll)

	// Items
	g.GET("/items", c.Item.List)
	g.GET("/items/:id", c.Item.Detail)
	g.POST("/items", c.Item.Create, manage)
	g.PATCH("/items/:id", c.Item.Update, manage)
	g.DELETE("/items/:id", c.Item.Delete, manage)

	// Categories
	g.GET("/categories", c.Category.List)
	g.POST("/categories", c.Category.Add, RequireAction(policy.ActionCategoryManage))
	g.PUT("/categories/:id", c.Category.Rename, RequireAction(policy.ActionCategoryManage))
	g.DELETE("/categories/:id", c.Category.Remove, RequireAction(policy.ActionCategoryManage))

	// Favorites
	g.GET("/favorites", c.Favorite.List)
	g.POST("/favorites/toggle", c.Favorite.Toggle)

	// Rentals
	g.POST("/rentals/checkout", c.Rental.Checkout)
	g.POST("/rentals/:id/return", c.Rental.Return)
	g.POST("/rentals/:id/force-return", c.Rental.ForceReturn, RequireAction(policy.ActionForceReturn))
	g.GET("/rentals/my", c.Rental.MyRentals)
	g.GET("/rentals/active", c.Rental.Active, oversee)
	g.GET("/rentals/by-holder", c.Rental.ByHolder, oversee)
	g.GET("/rentals/broken", c.Rental.BrokenHistory, oversee)

	// Approvals
	g.GET("/approvals", c.Approval.ListWaiting, RequireAction(policy.ActionApprove))
	g.POST("/approvals/:id", c.Approval.Approve, RequireAction(policy.ActionApprove))

	// Uploads
	g.POST("/uploads", c.Upload.Upload)
}
