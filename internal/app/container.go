package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/marcvidal/hotel-booking-backend/internal/api"
	"github.com/marcvidal/hotel-booking-backend/internal/auth"
	"github.com/marcvidal/hotel-booking-backend/internal/booking"
	"github.com/marcvidal/hotel-booking-backend/internal/cache"
	"github.com/marcvidal/hotel-booking-backend/internal/config"
	"github.com/marcvidal/hotel-booking-backend/internal/favorite"
	"github.com/marcvidal/hotel-booking-backend/internal/hotel"
	"github.com/marcvidal/hotel-booking-backend/internal/ledger"
	"github.com/marcvidal/hotel-booking-backend/internal/pkg/storage"
	"github.com/marcvidal/hotel-booking-backend/internal/reconcile"
	"github.com/marcvidal/hotel-booking-backend/internal/room"
	"github.com/marcvidal/hotel-booking-backend/internal/roomtype"
	"github.com/marcvidal/hotel-booking-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Reconciler *reconcile.Reconciler
}

// NewContainer initializes all modules and returns the container.
// redisClient may be nil; availability caching is then disabled.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, redisClient *redis.Client, log *zap.Logger) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	files, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage failed: %w", err)
	}

	availabilityCache := cache.NewAvailabilityCache(redisClient, 0)

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, passwordHasher)

	// Hotel Module
	hotelRepo := hotel.NewPgxRepository(pool)
	hotelService := hotel.NewService(hotelRepo, files, storage.NewImageProcessor())

	// RoomType Module
	rtRepo := roomtype.NewPgxRepository(pool)
	rtService := roomtype.NewService(rtRepo)

	// Room Module
	roomRepo := room.NewPgxRepository(pool)
	roomService := room.NewService(roomRepo, hotelService, rtService)

	// Calendar Ledger
	ledgerStore := ledger.NewPgxStore(pool)
	ledgerService := ledger.NewService(ledgerStore, log, availabilityCache)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, ledgerService, roomService,
		cfg.MaxStayNights, cfg.CancelWindow, log)

	// Favorite Module
	favRepo := favorite.NewPgxRepository(pool)
	favService := favorite.NewService(favRepo)

	// Ledger/booking drift repair
	reconciler := reconcile.NewReconciler(bookingRepo, ledgerService, log)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		UploadDir:         cfg.UploadDir,
		UserService:       userService,
		HotelService:      hotelService,
		RoomTypeService:   rtService,
		RoomService:       roomService,
		LedgerService:     ledgerService,
		BookingService:    bookingService,
		FavoriteService:   favService,
		AvailabilityCache: availabilityCache,
		JWTManager:        jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Reconciler: reconciler,
	}, nil
}
