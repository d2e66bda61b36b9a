package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/agrovision-ai/go-crops/auth"
)

// NewRouter wires the handlers onto a gin engine. Signup, login, and health
// are public; everything else requires a valid bearer token.
func NewRouter(h *Handlers, tokens *auth.TokenIssuer) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/healthz", h.Health)
	r.POST("/v1/auth/signup", h.Signup)
	r.POST("/v1/auth/login", h.Login)

	authed := r.Group("/v1")
	authed.Use(tokens.Middleware())
	{
		authed.POST("/predict", h.Predict)
		authed.GET("/diseases", h.ListDiseases)
		authed.GET("/diseases/:name", h.GetDisease)
		authed.POST("/chat", h.Chat)
		authed.POST("/report", h.Report)
	}

	return r
}
