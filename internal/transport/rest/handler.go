package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"turnex/config"
	"turnex/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())

	router.Use(h.errorMiddleware())

	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		services := api.Group("/services")
		{
			services.GET("/", h.getServices)
			services.GET("/:id", h.getServiceByID)

			admin := services.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createService)
				admin.PUT("/:id", h.updateService)
				admin.DELETE("/:id", h.deleteService)
				admin.POST("/:id/image", h.uploadServiceImage)
				admin.DELETE("/:id/image", h.deleteServiceImage)
			}
		}

		availability := api.Group("/availability")
		{
			availability.GET("/day", h.getDayAvailability)
			availability.GET("/month", h.getMonthAvailability)
		}

		configGroup := api.Group("/config")
		{
			configGroup.GET("/", h.getScheduleConfig)

			admin := configGroup.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.PUT("/", h.updateScheduleConfig)
			}
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("/", h.createBooking)

			admin := bookings.Group("/")
			admin.Use(h.authMiddleware(), h.adminMiddleware())
			{
				admin.GET("/", h.getBookings)
				admin.GET("/day", h.getBookingsByDay)
				admin.GET("/:id", h.getBookingByID)
				admin.PUT("/:id", h.updateBooking)
				admin.DELETE("/:id", h.cancelBooking)
			}
		}
	}
}
