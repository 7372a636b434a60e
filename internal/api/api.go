package api

import (
	"net/http"

	authHandler "gettupp-server/internal/auth/handler"
	clientsHandler "gettupp-server/internal/crm/clients/handler"
	invoicesHandler "gettupp-server/internal/crm/invoices/handler"
	leadsHandler "gettupp-server/internal/crm/leads/handler"
	shootsHandler "gettupp-server/internal/crm/shoots/handler"
	reportsHandler "gettupp-server/internal/reports/handler"
	"gettupp-server/internal/tiers"

	"github.com/gin-gonic/gin"
)

type API struct {
	router          *gin.RouterGroup
	authHandler     authHandler.Handler
	leadsHandler    leadsHandler.Handler
	clientsHandler  clientsHandler.Handler
	shootsHandler   shootsHandler.Handler
	invoicesHandler invoicesHandler.Handler
	reportsHandler  reportsHandler.Handler
	intakeLimiter   gin.HandlerFunc
}

func New(
	router *gin.RouterGroup,
	authHandler authHandler.Handler,
	leadsHandler leadsHandler.Handler,
	clientsHandler clientsHandler.Handler,
	shootsHandler shootsHandler.Handler,
	invoicesHandler invoicesHandler.Handler,
	reportsHandler reportsHandler.Handler,
	intakeLimiter gin.HandlerFunc,
) API {
	return API{
		router:          router,
		authHandler:     authHandler,
		leadsHandler:    leadsHandler,
		clientsHandler:  clientsHandler,
		shootsHandler:   shootsHandler,
		invoicesHandler: invoicesHandler,
		reportsHandler:  reportsHandler,
		intakeLimiter:   intakeLimiter,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/login", a.authHandler.HandleLogin)

		// public lead intake, captcha-gated and rate-limited
		apiGroup.POST("/leads/intake", a.intakeLimiter, a.leadsHandler.HandleSubmitLead)
	}

	protectedGroup := apiGroup.Group("/protected", a.authHandler.HandleJWTMiddleware)
	{
		protectedGroup.GET("/leads", a.leadsHandler.HandleListLeads)
		protectedGroup.GET("/leads/:id", a.leadsHandler.HandleGetLead)
		protectedGroup.PATCH("/leads/:id/status", a.leadsHandler.HandleSetLeadStatus)
		protectedGroup.PATCH("/leads/:id/score", a.leadsHandler.HandleSetLeadScore)
		protectedGroup.POST("/leads/:id/convert", a.leadsHandler.HandleConvertLead)

		protectedGroup.POST("/clients", a.clientsHandler.HandleCreateClient)
		protectedGroup.GET("/clients", a.clientsHandler.HandleListClients)
		protectedGroup.GET("/clients/:id", a.clientsHandler.HandleGetClient)
		protectedGroup.PATCH("/clients/:id/status", a.clientsHandler.HandleSetClientStatus)
		protectedGroup.GET("/clients/:id/shoots", a.shootsHandler.HandleListClientShoots)
		protectedGroup.GET("/clients/:id/invoices", a.invoicesHandler.HandleListClientInvoices)

		protectedGroup.POST("/shoots", a.shootsHandler.HandleCreateShoot)
		protectedGroup.GET("/shoots/upcoming", a.shootsHandler.HandleListUpcomingShoots)
		protectedGroup.GET("/shoots/:id", a.shootsHandler.HandleGetShoot)
		protectedGroup.PATCH("/shoots/:id/status", a.shootsHandler.HandleAdvanceShoot)
		protectedGroup.PATCH("/shoots/:id/delivered", a.shootsHandler.HandleSetDeliveredImages)

		protectedGroup.POST("/invoices", a.invoicesHandler.HandleGenerateInvoice)
		protectedGroup.GET("/invoices/:id", a.invoicesHandler.HandleGetInvoice)
		protectedGroup.POST("/invoices/:id/pay", a.invoicesHandler.HandleMarkInvoicePaid)
		protectedGroup.PATCH("/invoices/:id/status", a.invoicesHandler.HandleSetInvoiceStatus)

		protectedGroup.GET("/reports", a.reportsHandler.HandleListReports)
		protectedGroup.GET("/reports/:source", a.reportsHandler.HandleGetReport)

		protectedGroup.GET("/tiers", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"tiers": tiers.ListInfo()})
		})
	}

	apiGroup.POST("/billing/webhook", a.invoicesHandler.HandleWebhook)
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
