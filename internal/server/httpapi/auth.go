package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/users"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Country  string `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
}

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(common.TokenCookieName, token, maxAge, "/", "", false, true)
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), users.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Country:  req.Country,
	})
	if err != nil {
		s.fail(c, err, "User not found")
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", user.ID.Hex())
	s.setSessionCookie(c, token, int(s.tokenTTL.Seconds()))
	c.JSON(http.StatusCreated, authResponse{User: user, Token: token})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err, "User not found")
		return
	}

	s.setSessionCookie(c, token, int(s.tokenTTL.Seconds()))
	c.JSON(http.StatusOK, authResponse{User: user, Token: token})
}

func (s *Server) logout(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), currentUser(c).ID, req.Name, req.Country)
	if err != nil {
		s.fail(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}
