// Package main equipment rental API.
//
// @title           Equipment Rental API
// @version         1.0
// @description     Equipment checkout service (items, categories, rentals, approvals).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"equiprental/app/echoServer"
	approvalctrl "equiprental/app/echoServer/controller/approval"
	authctrl "equiprental/app/echoServer/controller/auth"
	categoryctrl "equiprental/app/echoServer/controller/category"
	favoritectrl "equiprental/app/echoServer/controller/favorite"
	itemctrl "equiprental/app/echoServer/controller/item"
	rentalctrl "equiprental/app/echoServer/controller/rental"
	uploadctrl "equiprental/app/echoServer/controller/upload"
	"equiprental/app/echoServer/validation"
	"equiprental/config"
	categoryrepo "equiprental/repository/category"
	favoriterepo "equiprental/repository/favorite"
	itemrepo "equiprental/repository/item"
	rentalrepo "equiprental/repository/rental"
	storagerepo "equiprental/repository/storage"
	userrepo "equiprental/repository/user"
	approvalsvc "equiprental/service/approval"
	authsvc "equiprental/service/auth"
	categorysvc "equiprental/service/category"
	favoritesvc "equiprental/service/favorite"
	itemsvc "equiprental/service/item"
	rentalsvc "equiprental/service/rental"
	"equiprental/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	ir := itemrepo.New(db)
	cr := categoryrepo.New(db)
	fr := favoriterepo.New(db)
	rr := rentalrepo.New(db)
	sr := storagerepo.NewHTTP(cfg.StorageURL, cfg.StorageKey)

	// services
	as := authsvc.New(ur, cfg.JWTSecret)
	is := itemsvc.New(ir)
	cs := categorysvc.New(cr)
	fs := favoritesvc.New(fr)
	rs := rentalsvc.New(rr)
	aps := approvalsvc.New(ur)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	itemC := &itemctrl.Controller{Svc: is, V: v, Log: log}
	categoryC := &categoryctrl.Controller{Svc: cs, V: v, Log: log}
	favoriteC := &favoritectrl.Controller{Svc: fs, V: v, Log: log}
	rentalC := &rentalctrl.Controller{Svc: rs, V: v, Log: log}
	approvalC := &approvalctrl.Controller{Svc: aps, V: v, Log: log}
	uploadC := &uploadctrl.Controller{Storage: sr, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:     authC,
		Item:     itemC,
		Category: categoryC,
		Favorite: favoriteC,
		Rental:   rentalC,
		Approval: approvalC,
		Upload:   uploadC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
