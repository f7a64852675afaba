// Package http exposes the storefront over HTTP with echo. Handlers bind and
// validate typed requests, resolve the caller's identity from the session and
// delegate to the command and query handlers.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"topup/internal/core/application/usecases/commands"
	"topup/internal/core/application/usecases/queries"
	"topup/internal/core/domain/model/identity"

	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	AttachProofHandler interface {
		Handle(ctx context.Context, cmd commands.AttachProofCommand) error
	}
	ConfirmOrderHandler interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) error
	}
	DeleteOrderHandler interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}

	GetCatalogHandler interface {
		Handle(ctx context.Context, query queries.GetCatalogQuery) ([]queries.CatalogItemView, error)
	}
	GetBestSellersHandler interface {
		Handle(ctx context.Context, query queries.GetBestSellersQuery) ([]queries.BestSellerView, error)
	}
	GetBuyerOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetBuyerOrdersQuery) ([]queries.OrderView, error)
	}
	GetAllOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetAllOrdersQuery) ([]queries.OrderView, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}
	GenerateReceiptHandler interface {
		Handle(ctx context.Context, query queries.GenerateReceiptQuery) (queries.ReceiptFile, error)
	}
)

// UseCases groups the application handlers the server delegates to.
type UseCases struct {
	// Command handlers
	CreateOrder  CreateOrderHandler
	AttachProof  AttachProofHandler
	ConfirmOrder ConfirmOrderHandler
	DeleteOrder  DeleteOrderHandler

	// Query handlers
	GetCatalog      GetCatalogHandler
	GetBestSellers  GetBestSellersHandler
	GetBuyerOrders  GetBuyerOrdersHandler
	GetAllOrders    GetAllOrdersHandler
	GetOrder        GetOrderHandler
	GenerateReceipt GenerateReceiptHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	useCases      UseCases
	auth          *Authenticator
	sessions      *SessionManager
	maxProofBytes int64
	logger        *slog.Logger
}

func NewServer(
	useCases UseCases,
	auth *Authenticator,
	sessions *SessionManager,
	maxProofBytes int64,
	logger *slog.Logger,
) *Server {
	if maxProofBytes <= 0 {
		maxProofBytes = commands.DefaultMaxProofBytes
	}
	return &Server{
		useCases:      useCases,
		auth:          auth,
		sessions:      sessions,
		maxProofBytes: maxProofBytes,
		logger:        logger.With("component", "http"),
	}
}

// RegisterRoutes mounts every route on e. Middleware applied to e before the
// call (logging, recovery, CSRF) runs ahead of the session lookup.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.HTTPErrorHandler = s.handleError
	e.Use(s.sessions.LoadIdentity)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	e.POST("/register", s.Register)
	e.POST("/login", s.Login)
	e.POST("/logout", s.Logout)
	e.GET("/csrf", s.CSRFToken)

	e.GET("/catalog", s.GetCatalog)
	e.GET("/best-sellers", s.GetBestSellers)

	e.POST("/cart", s.CreateOrder)
	e.GET("/orders", s.GetBuyerOrders)
	e.GET("/orders/:id", s.GetOrder, RequireIdentity)
	e.POST("/orders/:id", s.DeleteOrder, RequireIdentity)
	e.DELETE("/orders/:id", s.DeleteOrder, RequireIdentity)
	e.POST("/orders/:id/proof", s.UploadProof, RequireIdentity)
	e.GET("/orders/:id/receipt", s.DownloadReceipt, RequireIdentity)

	admin := []echo.MiddlewareFunc{RequireIdentity, RequireRole(identity.RoleAdmin)}
	e.GET("/admin/orders", s.GetAllOrders, admin...)
	e.POST("/admin/orders/:id/confirm", s.ConfirmOrder, admin...)
	e.POST("/admin/orders/:id", s.DeleteOrder, admin...)
	e.DELETE("/admin/orders/:id", s.DeleteOrder, admin...)
}
