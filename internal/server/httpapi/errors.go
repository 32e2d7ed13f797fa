package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/gin-gonic/gin"
)

// fail writes err as a JSON {"message": ...} body. notFound is the message
// used for common.ErrorNotFound.
func (s *Server) fail(c *gin.Context, err error, notFound string) {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		abort(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, common.ErrorNotFound):
		abort(c, http.StatusNotFound, notFound)
	case errors.Is(err, common.ErrUserAlreadyExists):
		abort(c, http.StatusConflict, "User already exists")
	case errors.Is(err, common.ErrInvalidCredentials):
		abort(c, http.StatusUnauthorized, "Invalid email or password")
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		abort(c, http.StatusInternalServerError, "Server error")
	}
}
