// Package router assembles the HTTP surface of the API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"spendwise/internal/handlers"
	"spendwise/internal/middleware"
	"spendwise/internal/models"
	"spendwise/internal/services"

	_ "spendwise/internal/docs" // Import swagger docs
)

// Services are the business services the routes delegate to.
type Services struct {
	Users    services.UserServicer
	Budgets  services.BudgetServicer
	Expenses services.ExpenseServicer
}

// New builds the gin engine with every route registered.
func New(svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users)
	userHandler := handlers.NewUserHandler(svc.Users)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets)
	expenseHandler := handlers.NewExpenseHandler(svc.Expenses)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/name", authHandler.UpdateName)
	protected.DELETE("/profile", authHandler.DeleteProfile)

	users := protected.Group("/users")
	users.Use(middleware.RequireRole(svc.Users, models.RoleAdmin))
	users.GET("", userHandler.ListUsers)
	users.PUT("/:username/role", userHandler.SetRole)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.GET("/:id/expenses", expenseHandler.GetBudgetExpenses)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/range", expenseHandler.GetExpensesInRange)
	expenses.GET("/above", expenseHandler.GetExpensesAbove)
	expenses.GET("/below", expenseHandler.GetExpensesBelow)
	expenses.GET("/sorted", expenseHandler.GetSortedExpenses)
	expenses.GET("/category/:category", expenseHandler.GetExpensesByCategory)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PATCH("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
