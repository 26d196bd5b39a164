package api

import (
	"reservation_system/internal/middleware" // Request context resolver and logging

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/graphql-go/graphql" // GraphQL schema
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

// RouterConfig holds everything the HTTP layer needs
type RouterConfig struct {
	Auth           Authenticator            // Registration and login
	Users          middleware.UserLookup    // Identity lookup for tokens
	Tokens         middleware.TokenVerifier // Token verification
	Schema         graphql.Schema           // Reservations schema
	Checks         map[string]HealthCheck   // Dependency checks for /healthz
	Log            logrus.FieldLogger       // Operational log
	Audit          logrus.FieldLogger       // Authentication failure log
	CORSOrigins    []string                 // Allowed CORS origins
	TrustedProxies []string                 // Proxies trusted for client IPs
}

// NewRouter builds the gin engine with every route
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New() // Gin router instance
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(cfg.Log),
		middleware.Recovery(cfg.Log),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/healthz", HealthHandler(cfg.Checks)) // Liveness and dependency check

	authenticate := middleware.Authenticate(cfg.Tokens, cfg.Users, cfg.Audit)

	// Auth routes
	auth := r.Group("/api/auth")
	auth.POST("/register", RegisterHandler(cfg.Auth))   // Registration endpoint
	auth.POST("/login", LoginHandler(cfg.Auth))         // Login endpoint
	auth.GET("/me", authenticate, MeHandler(cfg.Users)) // Current user endpoint

	// GraphQL routes (protected by JWT)
	gql := r.Group("/graphql", authenticate)
	gql.POST("", GraphQLHandler(cfg.Schema)) // Queries and mutations
	gql.GET("", GraphQLHandler(cfg.Schema))  // Queries only

	return r, nil
}
