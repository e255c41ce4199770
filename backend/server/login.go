package server

import (
	"net/http"

	"civicmap/backend/auth"
	"civicmap/backend/server/api"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func Login(c *gin.Context) {
	var args api.LoginArgs
	if err := c.BindJSON(&args); err != nil {
		log.Errorf("Failed to get the argument in /api/login call: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, err := auth.Login(args.Email, args.Password)
	if err != nil {
		log.Warnf("Failed admin login for %q: %v", args.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, api.LoginResponse{Token: token})
}
