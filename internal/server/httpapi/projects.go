package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const projectNotFound = "Project not found"

type projectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// objectID parses the :id route parameter. Malformed ids cannot name an
// existing document and are reported as not found.
func objectID(c *gin.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, common.ErrorNotFound
	}
	return id, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (s *Server) listProjects(c *gin.Context) {
	items, err := s.projects.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.fail(c, err, projectNotFound)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getProject(c *gin.Context) {
	id, err := objectID(c)
	if err != nil {
		s.fail(c, err, projectNotFound)
		return
	}
	p, err := s.projects.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		s.fail(c, err, projectNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) createProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.projects.Create(c.Request.Context(), currentUser(c).ID, deref(req.Name), deref(req.Description))
	if err != nil {
		s.fail(c, err, projectNotFound)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProject(c *gin.Context) {
	id, err := objectID(c)
	if err != nil {
		s.fail(c, err, projectNotFound)
		return
	}
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	p, err := s.projects.Update(c.Request.Context(), currentUser(c).ID, id, req.Name, req.Description)
	if err != nil {
		s.fail(c, err, projectNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProject(c *gin.Context) {
	id, err := objectID(c)
	if err != nil {
		s.fail(c, err, projectNotFound)
		return
	}
	if err := s.projects.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		s.fail(c, err, projectNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project removed"})
}
