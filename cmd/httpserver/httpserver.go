// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/moabank/bankbook/internal/accountdelivery"
	"github.com/moabank/bankbook/internal/accountrepo"
	"github.com/moabank/bankbook/internal/accountservice"
	"github.com/moabank/bankbook/internal/middleware"
	"github.com/moabank/bankbook/internal/sessiondelivery"
	"github.com/moabank/bankbook/internal/sessionrepo"
	"github.com/moabank/bankbook/internal/sessionservice"
	"github.com/moabank/bankbook/internal/transactiondelivery"
	"github.com/moabank/bankbook/internal/transactionrepo"
	"github.com/moabank/bankbook/internal/transactionservice"
	"github.com/moabank/bankbook/internal/userdelivery"
	"github.com/moabank/bankbook/internal/userrepo"
	"github.com/moabank/bankbook/internal/userservice"
	"github.com/moabank/bankbook/pkg/configpkg"
	"github.com/moabank/bankbook/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo, accountService)
	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)

	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	userHandler := userdelivery.NewHandler(userService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.DELETE("/accounts/:id", accountHandler.Delete)

	authRoutes.POST("/transactions", transactionHandler.Create)
	authRoutes.GET("/transactions/:id", transactionHandler.Get)
	authRoutes.GET("/transactions", transactionHandler.List)
	authRoutes.PATCH("/transactions/:id", transactionHandler.Update)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		for tag, fn := range map[string]validator.Func{
			"bankcode":    accountdelivery.ValidBankCode,
			"accounttype": accountdelivery.ValidAccountType,
			"iotype":      transactiondelivery.ValidIOType,
			"method":      transactiondelivery.ValidMethod,
		} {
			if err := v.RegisterValidation(tag, fn); err != nil {
				return nil, errors.New("cannot register " + tag + " validator")
			}
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
