package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"silab/internal/calendar"
	"silab/internal/config"
	"silab/internal/database"
	"silab/internal/domain"
	"silab/internal/middleware"
	"silab/internal/modules/account"
	"silab/internal/modules/auth"
	"silab/internal/modules/booking"
	"silab/internal/modules/dashboard"
	"silab/internal/modules/inventory"
	"silab/internal/modules/loan"
	"silab/internal/modules/notification"
	"silab/internal/modules/room"
	"silab/internal/modules/schedule"
	"silab/internal/modules/staff"
	jwtsvc "silab/internal/pkg/jwt"
	"silab/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	equipmentRepo := repository.NewEquipmentRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	cal := calendar.NewClient(cfg.CalendarBaseURL, cfg.CalendarAPIKey,
		cfg.CalendarTimeout, cfg.CalendarCache)
	loc := cfg.Location()

	hub := notification.NewHub()
	defer hub.Close()

	notificationService := notification.NewService(notificationRepo, userRepo, hub)
	notificationHandler := notification.NewHandler(notificationService, j)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	roomService := room.NewService(roomRepo, staffRepo)
	roomHandler := room.NewHandler(roomService)

	bookingService := booking.NewService(bookingRepo, roomRepo, cal, notificationService, loc)
	bookingHandler := booking.NewHandler(bookingService)

	inventoryService := inventory.NewService(equipmentRepo)
	inventoryHandler := inventory.NewHandler(inventoryService)

	loanService := loan.NewService(loanRepo, equipmentRepo)
	loanHandler := loan.NewHandler(loanService)

	staffService := staff.NewService(staffRepo)
	staffHandler := staff.NewHandler(staffService)

	accountService := account.NewService(accountRepo)
	accountHandler := account.NewHandler(accountService)

	scheduleService := schedule.NewService(bookingRepo, roomRepo, loc)
	scheduleHandler := schedule.NewHandler(scheduleService)

	dashboardService := dashboard.NewService(bookingRepo, roomRepo, equipmentRepo, loanRepo)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	r := gin.Default()

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			scheduleHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected, r)

			approvers := protected.Group("/")
			approvers.Use(middleware.Require(domain.Role.CanApproveBookings))
			bookingHandler.RegisterRoutes(protected, approvers)
			dashboardHandler.RegisterRoutes(approvers)

			keepers := protected.Group("/")
			keepers.Use(middleware.Require(domain.Role.CanManageInventory))
			inventoryHandler.RegisterRoutes(protected, keepers)

			lenders := protected.Group("/")
			lenders.Use(middleware.Require(domain.Role.CanManageLoans))
			loanHandler.RegisterRoutes(lenders)

			roomAdmin := protected.Group("/")
			roomAdmin.Use(middleware.Require(domain.Role.CanManageRooms))
			roomHandler.RegisterRoutes(protected, roomAdmin)

			admin := protected.Group("/")
			admin.Use(middleware.Require(domain.Role.CanManageUsers))
			staffHandler.RegisterRoutes(approvers, admin)
			accountHandler.RegisterRoutes(admin)
		}
	}

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
