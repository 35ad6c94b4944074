// Package devapi is an in-memory stand-in for the remote task collection
// API. It exists for local development and integration tests; it is not a
// persistence layer and forgets everything on restart.
package devapi

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/duyki2208/todo-list/internal/backend/restapi"
	"github.com/duyki2208/todo-list/internal/task"
)

// Server serves the tasks-collection endpoints over an in-memory map.
type Server struct {
	mu     sync.RWMutex
	tasks  map[string]task.Task
	engine *gin.Engine
}

// New creates a Server with empty state.
func New() *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		tasks:  make(map[string]task.Task),
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery())

	s.engine.GET(restapi.CollectionPath, s.list)
	s.engine.POST(restapi.CollectionPath, s.create)
	s.engine.PUT(restapi.CollectionPath+"/:id", s.update)
	s.engine.DELETE(restapi.CollectionPath+"/:id", s.remove)
	return s
}

// Handler exposes the server as an http.Handler (for httptest).
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error { return s.engine.Run(addr) }

// Seed inserts a task directly, assigning an id if it has none.
func (s *Server) Seed(t task.Task) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.tasks[t.ID] = t
	return t.ID
}

// list returns the keyed map of tasks. Values carry no id field; the id
// lives in the key, as the real collection serves it.
func (s *Server) list(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]task.Task, len(s.tasks))
	for id, t := range s.tasks {
		t.ID = ""
		out[id] = t
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) create(c *gin.Context) {
	var t task.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}
	if t.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if _, err := time.Parse(task.DateLayout, t.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	t.ID = uuid.NewString()
	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()

	c.JSON(http.StatusCreated, t)
}

func (s *Server) update(c *gin.Context) {
	id := c.Param("id")

	var t task.Task
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task payload"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	t.ID = id
	s.tasks[id] = t
	c.JSON(http.StatusOK, t)
}

func (s *Server) remove(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	delete(s.tasks, id)
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
