package main

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/go-petr/invoice-dash/internal/authservice"
	"github.com/go-petr/invoice-dash/internal/invoicedelivery"
	"github.com/go-petr/invoice-dash/internal/invoicerepo"
	"github.com/go-petr/invoice-dash/internal/invoiceservice"
	"github.com/go-petr/invoice-dash/internal/middleware"
	"github.com/go-petr/invoice-dash/internal/sessiondelivery"
	"github.com/go-petr/invoice-dash/internal/sessionrepo"
	"github.com/go-petr/invoice-dash/internal/sessionservice"
	"github.com/go-petr/invoice-dash/internal/userdelivery"
	"github.com/go-petr/invoice-dash/internal/userrepo"
	"github.com/go-petr/invoice-dash/internal/userservice"
	"github.com/go-petr/invoice-dash/internal/viewcache"
	"github.com/go-petr/invoice-dash/pkg/configpkg"
	"github.com/go-petr/invoice-dash/pkg/dbpkg"
	"github.com/go-petr/invoice-dash/pkg/tokenpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := createServer(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	if err := server.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	invoiceRepo := invoicerepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, fmt.Errorf("cannot create token maker: %w", err)
	}

	userService := userservice.New(userRepo)
	invoiceService := invoiceservice.New(invoiceRepo, config.InvoicesPath)
	authService := authservice.New(authservice.NewCredentialsSignIn(userRepo))

	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize session service: %w", err)
	}

	cache := viewcache.New()

	userHandler := userdelivery.NewHandler(userService, authService, sessionService)
	invoiceHandler := invoicedelivery.NewHandler(invoiceService, cache)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/users", userHandler.Create)
	server.POST("/login", userHandler.Login)
	server.POST("/sessions/renew", sessionHandler.RenewAccessToken)

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST(config.InvoicesPath, invoiceHandler.Create)
	authRoutes.GET(config.InvoicesPath, invoiceHandler.List)
	authRoutes.GET(config.InvoicesPath+"/:id", invoiceHandler.Get)
	authRoutes.PUT(config.InvoicesPath+"/:id", invoiceHandler.Update)
	authRoutes.DELETE(config.InvoicesPath+"/:id", invoiceHandler.Delete)

	return server, nil
}
