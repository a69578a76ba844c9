package v1

import (
	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC   domain.CandidateUsecase
	RecruiterUC   domain.RecruiterUsecase
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	ResumeUC      domain.ResumeUsecase
	HealthUC      usecase.HealthUsecase
	Audit         *security.AuditLogger
	RateLimiter   *middleware.RateLimiter
	UploadLimiter *security.UploadLimiter
	Config        *config.Config
}

// routeGroups are the mount points handlers register on. All share the
// /v1 prefix and differ only in middleware.
type routeGroups struct {
	public    *gin.RouterGroup
	register  *gin.RouterGroup
	candidate *gin.RouterGroup
	recruiter *gin.RouterGroup
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = middleware.NewRateLimiter(nil, deps.Audit)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.ResumeMaxBytes()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.Middleware(middleware.DefaultRateLimitConfig()))

	v1 := r.Group("/v1")

	// Swagger
	if cfg.SwaggerEnabled {
		v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret, deps.Audit))

	g := routeGroups{
		public:    v1,
		register:  v1.Group("", rateLimiter.Middleware(middleware.AuthRateLimitConfig())),
		candidate: protected.Group("", middleware.RequireRole(domain.RoleCandidate)),
		recruiter: protected.Group("", middleware.RequireRole(domain.RoleRecruiter)),
	}

	var uploadLimit gin.HandlerFunc
	if deps.UploadLimiter != nil {
		uploadLimit = middleware.UploadRateLimit(deps.UploadLimiter, deps.Audit)
	}

	NewHealthHandler(g, deps.HealthUC)
	NewCandidateHandler(g, deps.CandidateUC, deps.ApplicationUC)
	NewRecruiterHandler(g, deps.RecruiterUC, deps.JobUC)
	NewJobHandler(g, deps.JobUC)
	NewApplicationHandler(g, deps.ApplicationUC)
	NewResumeHandler(g, deps.ResumeUC, cfg.ResumeMaxBytes(), uploadLimit)

	return r
}

func currentUserID(c *gin.Context) string {
	return c.GetString(string(domain.KeyUserID))
}

// bindJSON decodes the request body and reports a 400 on failure.
// Field rules are enforced by the usecases.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return false
	}
	return true
}
