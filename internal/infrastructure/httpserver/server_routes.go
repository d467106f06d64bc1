package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	catalog := s.echo.Group("/catalog")
	catalog.GET("/products", s.listProducts)
	catalog.POST("/products", s.refreshProducts, s.middleware.Auth.RequireInvalidateAuth())
	catalog.GET("/categories", s.listCategories)
	catalog.POST("/invalidate", s.invalidate, s.middleware.Auth.RequireInvalidateAuth())

	currency := s.echo.Group("/currency")
	currency.GET("/rates", s.getRates)
	currency.POST("/convert", s.convert)

	carts := s.echo.Group("/cart")
	carts.GET("/:id", s.getCart)
	carts.POST("/:id/items", s.addCartItem)
	carts.PUT("/:id/items/:product_id", s.setCartItemQuantity)
	carts.DELETE("/:id/items/:product_id", s.removeCartItem)

	admin := s.echo.Group("/admin", s.middleware.Auth.RequireInvalidateAuth())
	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.deleteProduct)
	admin.POST("/categories", s.createCategory)
	admin.PUT("/categories/:id", s.updateCategory)
	admin.DELETE("/categories/:id", s.deleteCategory)
}
