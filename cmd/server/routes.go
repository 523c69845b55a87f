package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"tujenge.backend/internal/domain/entities"
	"tujenge.backend/internal/interfaces/http/handlers"
	"tujenge.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler        *handlers.AuthHandler
	customerHandler    *handlers.CustomerHandler
	documentHandler    *handlers.DocumentHandler
	productHandler     *handlers.LoanProductHandler
	loanHandler        *handlers.LoanHandler
	transactionHandler *handlers.TransactionHandler
	auditHandler       *handlers.AuditHandler
	authMiddleware     gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID, Idempotency-Key")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "tujenge-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/register", d.authMiddleware, middleware.RequireAdmin(), d.authHandler.Register)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// Staff management (admin only)
		users := v1.Group("/users")
		users.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			users.GET("", d.authHandler.ListUsers)
			users.DELETE("/:id", d.authHandler.DeactivateUser)
		}

		// Customer routes (any authenticated staff)
		customers := v1.Group("/customers")
		customers.Use(d.authMiddleware)
		{
			customers.POST("", d.customerHandler.Create)
			customers.GET("", d.customerHandler.List)
			customers.GET("/analytics", d.customerHandler.Analytics)
			customers.GET("/number/:number", d.customerHandler.GetByNumber)
			customers.GET("/:id", d.customerHandler.Get)
			customers.PATCH("/:id", d.customerHandler.Update)
			customers.DELETE("/:id", d.customerHandler.Delete)
			customers.POST("/:id/verify-nida", d.customerHandler.VerifyNIDA)
			customers.GET("/:id/eligibility", d.customerHandler.Eligibility)

			customers.POST("/:id/documents", d.documentHandler.Upload)
			customers.GET("/:id/documents", d.documentHandler.ListByCustomer)
		}

		// Document routes
		documents := v1.Group("/documents")
		documents.Use(d.authMiddleware)
		{
			documents.GET("/:id", d.documentHandler.Get)
			documents.POST("/:id/review", middleware.RequireRole(entities.UserRoleAdmin, entities.UserRoleLoanOfficer), d.documentHandler.Review)
			documents.DELETE("/:id", middleware.RequireAdmin(), d.documentHandler.Delete)
		}

		// Loan product routes (read for all staff, writes admin only)
		products := v1.Group("/loan-products")
		products.Use(d.authMiddleware)
		{
			products.GET("", d.productHandler.List)
			products.GET("/:id", d.productHandler.Get)
			products.POST("", middleware.RequireAdmin(), d.productHandler.Create)
			products.PATCH("/:id", middleware.RequireAdmin(), d.productHandler.Update)
			products.DELETE("/:id", middleware.RequireAdmin(), d.productHandler.Delete)
		}

		// Loan routes
		loans := v1.Group("/loans")
		loans.Use(d.authMiddleware)
		{
			loans.POST("", middleware.IdempotencyMiddleware(), d.loanHandler.Apply)
			loans.GET("", d.loanHandler.List)
			loans.GET("/analytics", d.loanHandler.Analytics)
			loans.GET("/number/:number", d.loanHandler.GetByNumber)
			loans.GET("/:id", d.loanHandler.Get)
			loans.GET("/:id/schedule", d.loanHandler.Schedule)
			loans.GET("/:id/settlement-quote", d.loanHandler.SettlementQuote)

			reviewers := middleware.RequireRole(entities.UserRoleAdmin, entities.UserRoleLoanOfficer)
			loans.POST("/:id/review/start", reviewers, d.loanHandler.StartReview)
			loans.POST("/:id/review", reviewers, d.loanHandler.Review)

			disbursers := middleware.RequireRole(entities.UserRoleAdmin, entities.UserRoleDisbursementOfficer)
			loans.POST("/:id/disburse", disbursers, middleware.IdempotencyMiddleware(), d.loanHandler.Disburse)

			tellers := middleware.RequireRole(entities.UserRoleAdmin, entities.UserRoleTeller)
			loans.POST("/:id/repayments", tellers, middleware.IdempotencyMiddleware(), d.loanHandler.Repay)
			loans.POST("/:id/settle", tellers, middleware.IdempotencyMiddleware(), d.loanHandler.Settle)
		}

		// Transaction routes
		transactions := v1.Group("/transactions")
		transactions.Use(d.authMiddleware)
		{
			transactions.GET("", d.transactionHandler.List)
			transactions.GET("/summary", d.transactionHandler.Summary)
			transactions.GET("/reference/:reference", d.transactionHandler.GetByReference)
			transactions.GET("/:id", d.transactionHandler.Get)
			transactions.POST("/:id/reverse", middleware.RequireAdmin(), d.transactionHandler.Reverse)
		}

		// Audit trail (admin only)
		auditLogs := v1.Group("/audit-logs")
		auditLogs.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			auditLogs.GET("", d.auditHandler.List)
		}
	}
}
