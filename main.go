// Package main library catalog API.
//
// @title           Library Catalog API
// @version         1.0
// @description     Book catalog with per-copy borrow/return lifecycle.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Ursulinastarry/book-library/app/echoServer"
	bookctrl "github.com/Ursulinastarry/book-library/app/echoServer/controller/book"
	loanctrl "github.com/Ursulinastarry/book-library/app/echoServer/controller/loan"
	"github.com/Ursulinastarry/book-library/app/echoServer/validation"
	"github.com/Ursulinastarry/book-library/config"
	bookrepo "github.com/Ursulinastarry/book-library/repository/book"
	copyrepo "github.com/Ursulinastarry/book-library/repository/copy"
	loanrepo "github.com/Ursulinastarry/book-library/repository/loan"
	availabilitysvc "github.com/Ursulinastarry/book-library/service/availability"
	booksvc "github.com/Ursulinastarry/book-library/service/book"
	loansvc "github.com/Ursulinastarry/book-library/service/loan"
	"github.com/Ursulinastarry/book-library/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB over pgx, one pool for the process lifetime
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	br := bookrepo.New(db)
	cr := copyrepo.New(db)
	lr := loanrepo.New(db)

	// services
	bs := booksvc.New(br)
	as := availabilitysvc.New(cr)
	ls := loansvc.New(lr, cfg.DefaultLibrarianID)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	loanC := &loanctrl.Controller{Avail: as, Svc: ls, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e, cfg.FrontendOrigin)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:          bookC,
		Loan:          loanC,
		SessionSecret: cfg.SessionSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		log.Info("starting server", "port", port, "env", cfg.Env)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}
