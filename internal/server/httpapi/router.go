package httpapi

import (
	"slices"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Users  UserService
	Tasks  TaskService
	Auth   Authenticator
	DB     Pinger
	Logger logging.Logger

	// CORSOrigins lists the allowed browser origins; "*" allows any.
	CORSOrigins []string
}

type handler struct {
	users  UserService
	tasks  TaskService
	auth   Authenticator
	db     Pinger
	logger logging.Logger
}

// NewRouter builds the gin engine with all routes.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	h := &handler{
		users:  d.Users,
		tasks:  d.Tasks,
		auth:   d.Auth,
		db:     d.DB,
		logger: logger.With("module", "http"),
	}

	r := gin.New()
	r.Use(gin.Recovery(), h.accessLog, cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/", h.root)
	r.GET("/healthz", h.healthz)

	user := r.Group("/user")
	user.POST("/register", h.register)
	user.POST("/login", h.login)

	protected := user.Group("", h.requireAuth)
	protected.GET("/me", h.me)
	protected.GET("/users", h.listUsers)
	protected.GET("/users/:id", h.getUser)

	tasks := r.Group("/tasks", h.requireAuth)
	tasks.GET("", h.listTasks)
	tasks.POST("", h.createTask)
	tasks.GET("/:id", h.getTask)
	tasks.PUT("/:id", h.updateTask)
	tasks.DELETE("/:id", h.deleteTask)

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, common.AuthorizationHeaderName)
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
