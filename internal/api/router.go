package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/marcvidal/hotel-booking-backend/internal/auth"
	"github.com/marcvidal/hotel-booking-backend/internal/booking"
	bookingHttp "github.com/marcvidal/hotel-booking-backend/internal/booking/http"
	"github.com/marcvidal/hotel-booking-backend/internal/cache"
	"github.com/marcvidal/hotel-booking-backend/internal/favorite"
	favoriteHttp "github.com/marcvidal/hotel-booking-backend/internal/favorite/http"
	"github.com/marcvidal/hotel-booking-backend/internal/hotel"
	hotelHttp "github.com/marcvidal/hotel-booking-backend/internal/hotel/http"
	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
	ledgerHttp "github.com/marcvidal/hotel-booking-backend/internal/ledger/http"
	"github.com/marcvidal/hotel-booking-backend/internal/room"
	roomHttp "github.com/marcvidal/hotel-booking-backend/internal/room/http"
	"github.com/marcvidal/hotel-booking-backend/internal/roomtype"
	roomtypeHttp "github.com/marcvidal/hotel-booking-backend/internal/roomtype/http"
	"github.com/marcvidal/hotel-booking-backend/internal/user"
	userHttp "github.com/marcvidal/hotel-booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins in production
	UploadDir    string // served under /uploads

	UserService     user.Service
	HotelService    hotel.Service
	RoomTypeService roomtype.Service
	RoomService     room.Service
	LedgerService   ledger.Service
	BookingService  booking.Service
	FavoriteService favorite.Service

	AvailabilityCache *cache.AvailabilityCache
	JWTManager        *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user has the admin role.
	adminMiddleware := auth.RequireAdmin()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	hotelHandler := hotelHttp.NewHandler(cfg.HotelService)
	roomTypeHandler := roomtypeHttp.NewHandler(cfg.RoomTypeService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService)
	ledgerHandler := ledgerHttp.NewHandler(cfg.LedgerService, cfg.RoomService, cfg.AvailabilityCache)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	favoriteHandler := favoriteHttp.NewHandler(cfg.FavoriteService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Serve uploaded hotel images.
	if cfg.UploadDir != "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		hotelHttp.RegisterRoutes(v1, hotelHandler, authMiddleware, adminMiddleware)
		roomtypeHttp.RegisterRoutes(v1, roomTypeHandler, authMiddleware, adminMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, adminMiddleware)
		ledgerHttp.RegisterRoutes(v1, ledgerHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		favoriteHttp.RegisterRoutes(v1, favoriteHandler, authMiddleware)
	}

	return r
}
