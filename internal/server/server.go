package server

import (
	"net/http"

	"storefront-client/internal/handler"
	appmiddleware "storefront-client/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the stub commerce backend used for local runs of the client.
type Server struct {
	echo            *echo.Echo
	authHandler     *handler.AuthHandler
	shopHandler     *handler.ShopHandler
	checkoutHandler *handler.CheckoutHandler
}

func NewServer(store *handler.Store, jwtSecret string) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authHandler:     handler.NewAuthHandler(store, jwtSecret),
		shopHandler:     handler.NewShopHandler(store),
		checkoutHandler: handler.NewCheckoutHandler(store),
	}

	s.setupRoutes(jwtSecret)
	return s
}

func (s *Server) setupRoutes(jwtSecret string) {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- public --------
	api.POST("/auth/login", s.authHandler.Login)
	api.POST("/auth/register", s.authHandler.Register)
	api.POST("/auth/refresh", s.authHandler.Refresh)
	api.GET("/products", s.shopHandler.ListProducts)
	api.GET("/products/:id", s.shopHandler.GetProduct)

	// -------- authenticated --------
	auth := api.Group("", appmiddleware.JWT(jwtSecret))
	auth.GET("/auth/me", s.authHandler.Me)
	auth.PUT("/users/update", s.authHandler.UpdateUser)
	auth.PUT("/users/update-password", s.authHandler.UpdatePassword)

	auth.GET("/orders/cart", s.shopHandler.GetCart)
	auth.POST("/orders/add-item", s.shopHandler.AddItem)
	auth.PUT("/orders/update-item", s.shopHandler.UpdateItem)
	auth.DELETE("/orders/item/:id", s.shopHandler.DeleteItem)
	auth.PUT("/orders/update-order", s.shopHandler.UpdateOrder)

	auth.GET("/addresses", s.shopHandler.ListAddresses)
	auth.POST("/addresses", s.shopHandler.AddAddress)
	auth.PUT("/addresses", s.shopHandler.UpdateAddress)
	auth.DELETE("/addresses/:id", s.shopHandler.DeleteAddress)

	auth.POST("/checkout/setup-intent", s.checkoutHandler.CreateSetupIntent)
	auth.POST("/checkout/cancel-setup-intent", s.checkoutHandler.CancelSetupIntent)
	auth.POST("/checkout", s.checkoutHandler.Checkout)

	auth.GET("/subscriptions", s.checkoutHandler.ListSubscriptions)
	auth.POST("/subscriptions/cancel", s.checkoutHandler.CancelSubscription)
}

// Handler exposes the routing tree, mainly so tests can mount it on an
// httptest server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
