package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"palcolivre/api/internal/config"
	"palcolivre/api/internal/email"
	"palcolivre/api/internal/events"
	"palcolivre/api/internal/middleware"
	"palcolivre/api/internal/models"
	"palcolivre/api/internal/repository"
	"palcolivre/api/internal/service"
	"palcolivre/api/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     service.AuthService
	catalog  service.CatalogService
	cart     service.CartService
	orders   service.OrderService
	payments service.PaymentService
	photos   service.PhotoService
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, mailer *email.Mailer, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	instrumentRepo := repository.NewInstrumentRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	publisher := events.NewPublisher(cache, log)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     service.NewAuthService(userRepo, sessionRepo, cfg, log),
		catalog:  service.NewCatalogService(instrumentRepo),
		cart:     service.NewCartService(cartRepo, instrumentRepo),
		orders:   service.NewOrderService(orderRepo, cartRepo, publisher, mailer, log),
		payments: service.NewPaymentService(paymentRepo, orderRepo, publisher),
		photos:   service.NewPhotoService(photoRepo, instrumentRepo, store),
		db:       db,
		cache:    cache,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	authLimit := middleware.AuthRateLimit(h.cfg)
	router.POST("/cadastro", authLimit, h.Cadastro)
	router.POST("/login", authLimit, h.Login)

	router.GET("/instrumentos", h.ListInstruments)
	router.GET("/instrumentos/:id", h.GetInstrument)
	router.GET("/buscar", h.SearchInstruments)
	router.POST("/buscar", h.SearchInstruments)

	protected := router.Group("")
	protected.Use(middleware.Auth(h.auth))

	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.Me)
	protected.GET("/foto-perfil", h.FotoPerfil)
	protected.POST("/upload-foto", h.UploadFoto)

	protected.POST("/instrumentos", h.CreateInstrument)
	protected.PUT("/instrumentos/:id", h.UpdateInstrument)
	protected.DELETE("/instrumentos/:id", h.DeleteInstrument)
	protected.POST("/instrumentos/:id/foto", h.UploadInstrumentPhoto)

	protected.GET("/carrinho", h.ListCart)
	protected.POST("/carrinho", h.AddCartItem)
	protected.DELETE("/carrinho/:id", h.RemoveCartItem)

	protected.POST("/checkout", h.Checkout)
	protected.GET("/pedidos", h.ListOrders)
	protected.GET("/pedidos/:id", h.GetOrder)
	protected.POST("/pedidos", h.CreateOrder)
	protected.PUT("/pedidos/:id", h.UpdateOrder)
	protected.DELETE("/pedidos/:id", h.CancelOrder)

	protected.POST("/pagamentos", h.CreatePayment)
	protected.GET("/pagamentos/:id", h.GetPayment)
	protected.PUT("/pagamentos/:id", h.UpdatePayment)
}

// respondError maps service failures onto the error taxonomy. Anything
// unexpected logs server-side and surfaces as a generic 500.
func (h HandlerSet) respondError(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionInvalid):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.Writer.Header().Get("X-Request-Id")).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno no servidor"})
	}
}

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get(middleware.ContextUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}
