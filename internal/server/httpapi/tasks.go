package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/tasks"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	taskNotFound = "Task not found"
	defaultLimit = 10
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ProjectID   string `json:"projectId"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// positiveQuery reads an optional positive integer query parameter.
func positiveQuery(c *gin.Context, name string, def int) (int, bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return def, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, true, common.NewValidationError(name + " must be a positive integer")
	}
	return n, true, nil
}

// listTasks answers with a pagination envelope when page or limit is
// present and with a bare array otherwise.
func (s *Server) listTasks(c *gin.Context) {
	f := tasks.Filter{
		UserID: currentUser(c).ID,
		Status: c.Query("status"),
		Search: c.Query("search"),
	}
	if raw := c.Query("projectId"); raw != "" {
		pid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			s.fail(c, common.NewValidationError("Invalid project id"), taskNotFound)
			return
		}
		f.ProjectID = pid
	}

	page, hasPage, err := positiveQuery(c, "page", 1)
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	limit, hasLimit, err := positiveQuery(c, "limit", defaultLimit)
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	paginated := hasPage || hasLimit

	var p tasks.Page
	if paginated {
		p = tasks.Page{Page: page, Limit: limit}
	}

	items, total, err := s.tasks.List(c.Request.Context(), f, p)
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}

	if !paginated {
		c.JSON(http.StatusOK, items)
		return
	}
	c.JSON(http.StatusOK, models.TaskPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: pageCount(total, limit),
	})
}

// pageCount rounds total/limit up without adding to total, which could
// overflow for very large limits.
func pageCount(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total-1)/limit + 1
}

func (s *Server) getTask(c *gin.Context) {
	id, err := objectID(c)
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	t, err := s.tasks.Get(c.Request.Context(), currentUser(c).ID, id)
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	pid, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		s.fail(c, common.NewValidationError("Project not found"), taskNotFound)
		return
	}
	t, err := s.tasks.Create(c.Request.Context(), currentUser(c).ID, tasks.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		ProjectID:   pid,
	})
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (s *Server) updateTask(c *gin.Context) {
	id, err := objectID(c)
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	t, err := s.tasks.Update(c.Request.Context(), currentUser(c).ID, id, tasks.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) deleteTask(c *gin.Context) {
	id, err := objectID(c)
	if err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
		s.fail(c, err, taskNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}
