package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imorozov/carbook/internal/common"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleSignup serves POST /auth/signup.
func (s *RESTServer) handleSignup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inputs"})
		return
	}

	_, err := s.users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
			return
		}
		s.respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "user registered", "username", req.Username)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"message": "User created successfully"},
	})
}

// handleLogin serves POST /auth/login. Unknown username and wrong password
// produce byte-identical responses.
func (s *RESTServer) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inputs"})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"message": "Login successful", "token": token},
	})
}
