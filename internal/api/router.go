// Package api exposes the contact management as a JSON REST API. Every response body is either
// {"data": ...} or {"errors": "..."}.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/dirk.krummacker/contact-management/internal/apperror"
	"gitlab.com/dirk.krummacker/contact-management/internal/metrics"
	"gitlab.com/dirk.krummacker/contact-management/internal/service"
	"gitlab.com/dirk.krummacker/contact-management/internal/store"
	pub "gitlab.com/dirk.krummacker/contact-management/pkg/model"
	"go.uber.org/zap"
)

// Options control the ambient behavior of the router.
type Options struct {
	Logger         *zap.Logger
	Metrics        *metrics.Metrics
	RequestLogging bool
}

// handlers binds the HTTP endpoints to the domain services.
type handlers struct {
	users     *service.UserService
	contacts  *service.ContactService
	addresses *service.AddressService
	metrics   *metrics.Metrics
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func SetupHttpRouter(st *store.Store, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	contacts := service.NewContactService(st.Contacts)
	h := &handlers{
		users:     service.NewUserService(st.Users),
		contacts:  contacts,
		addresses: service.NewAddressService(contacts, st.Addresses),
		metrics:   opts.Metrics,
	}

	router := gin.New()
	router.Use(gin.CustomRecovery(recovery(opts.Logger)))
	if opts.RequestLogging {
		router.Use(requestLogger(opts.Logger))
	}
	router.Use(measure(opts.Metrics), normalizeErrors(opts.Logger))
	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NewNotFound("not found"))
	})

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Metrics.Registry, promhttp.HandlerOpts{})))

	public := router.Group("/api")
	public.POST("/users", h.register)
	public.POST("/users/login", h.login)

	private := router.Group("/api", authenticate(h.users))
	private.GET("/users/current", h.getCurrentUser)
	private.PATCH("/users/current", h.updateCurrentUser)
	private.DELETE("/users/logout", h.logout)

	private.POST("/contacts", h.createContact)
	private.GET("/contacts", h.searchContacts)
	private.GET("/contacts/:contactId", h.getContact)
	private.PUT("/contacts/:contactId", h.updateContact)
	private.DELETE("/contacts/:contactId", h.deleteContact)

	private.POST("/contacts/:contactId/addresses", h.createAddress)
	private.GET("/contacts/:contactId/addresses", h.listAddresses)
	private.GET("/contacts/:contactId/addresses/:addressId", h.getAddress)
	private.PUT("/contacts/:contactId/addresses/:addressId", h.updateAddress)
	private.DELETE("/contacts/:contactId/addresses/:addressId", h.deleteAddress)
	return router
}

// ok writes the success envelope.
func ok[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, pub.Response[T]{Data: data})
}

// fail hands the error to normalizeErrors and stops the handler chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
