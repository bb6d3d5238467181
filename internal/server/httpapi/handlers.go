package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/gin-gonic/gin"
)

const healthTimeout = 2 * time.Second

func (h *handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

func (h *handler) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn(ctx, "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) register(c *gin.Context) {
	var in services.Credentials
	if err := c.ShouldBindJSON(&in); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
		return
	}

	user, err := h.users.Register(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newUserResponse(user))
}

// login accepts the OAuth2 password form (username, password) or a JSON
// body with email and password.
func (h *handler) login(c *gin.Context) {
	var in services.Credentials
	if c.ContentType() == gin.MIMEJSON {
		if err := c.ShouldBindJSON(&in); err != nil {
			h.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
			return
		}
	} else {
		in.Email = c.PostForm("username")
		in.Password = c.PostForm("password")
	}

	token, err := h.users.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *handler) me(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), caller(c).UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handler) listUsers(c *gin.Context) {
	skip, limit, err := pageParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	users, err := h.users.List(c.Request.Context(), skip, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserList(users))
}

func (h *handler) getUser(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *handler) listTasks(c *gin.Context) {
	skip, limit, err := pageParams(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	items, err := h.tasks.List(c.Request.Context(), caller(c), skip, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskList(items))
}

func (h *handler) createTask(c *gin.Context) {
	var in models.TaskCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), caller(c), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handler) getTask(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handler) updateTask(c *gin.Context) {
	var upd models.TaskUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.writeError(c, fmt.Errorf("%w: %v", common.ErrInvalidInput, err))
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), caller(c), c.Param("id"), upd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handler) deleteTask(c *gin.Context) {
	if err := h.tasks.Delete(c.Request.Context(), caller(c), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func pageParams(c *gin.Context) (int, int, error) {
	skip, err := queryInt(c, "skip")
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", common.ErrInvalidInput, name)
	}
	return v, nil
}
