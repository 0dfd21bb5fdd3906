package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"monkid.com/backoffice/internal/config"
	"monkid.com/backoffice/internal/middleware"
	"monkid.com/backoffice/internal/permission"
	"monkid.com/backoffice/pkg/validator"

	attendanceHttp "monkid.com/backoffice/internal/modules/attendance/delivery/http"
	attendanceRepo "monkid.com/backoffice/internal/modules/attendance/repository"
	attendanceService "monkid.com/backoffice/internal/modules/attendance/service"

	authHttp "monkid.com/backoffice/internal/modules/auth/delivery/http"
	authRepo "monkid.com/backoffice/internal/modules/auth/repository"
	authService "monkid.com/backoffice/internal/modules/auth/service"

	statHttp "monkid.com/backoffice/internal/modules/stat/delivery/http"
	statService "monkid.com/backoffice/internal/modules/stat/service"

	studentHttp "monkid.com/backoffice/internal/modules/student/delivery/http"
	studentRepo "monkid.com/backoffice/internal/modules/student/repository"
	studentService "monkid.com/backoffice/internal/modules/student/service"

	teacherHttp "monkid.com/backoffice/internal/modules/teacher/delivery/http"
	teacherRepo "monkid.com/backoffice/internal/modules/teacher/repository"
	teacherService "monkid.com/backoffice/internal/modules/teacher/service"

	userHttp "monkid.com/backoffice/internal/modules/user/delivery/http"
	userRepo "monkid.com/backoffice/internal/modules/user/repository"
	userService "monkid.com/backoffice/internal/modules/user/service"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	validator.RegisterJSONTagNames()

	userRepository := userRepo.NewUserRepository(db)
	sessionRepository := authRepo.NewSessionRepository(db)
	blacklistRepository := authRepo.NewBlacklistRepository(db)

	tokenSvc := authService.NewTokenService(authService.TokenConfig{
		Secret:      cfg.JWTSecret,
		AccessTTL:   cfg.AccessTokenTTL,
		RefreshTTL:  cfg.RefreshTokenTTL,
		RotateOnUse: cfg.RotateRefreshTokens,
	}, blacklistRepository, redisClient)

	googleProvider := authService.NewGoogleProvider(authService.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
	})
	authSvc := authService.NewAuthService(userRepository, sessionRepository, tokenSvc, googleProvider, cfg.SessionTTL)

	resolvers := authService.DefaultResolvers(authService.ResolverConfig{
		SessionCookieName: cfg.SessionCookieName,
		Development:       cfg.IsDevelopment(),
		DevFallbackEmail:  cfg.DevFallbackEmail,
	}, userRepository, sessionRepository, tokenSvc)
	bridge := authService.NewSessionBridge(tokenSvc, resolvers...)

	authHandler := authHttp.NewAuthHandler(authSvc, tokenSvc, bridge, authHttp.CookieConfig{
		SessionCookieName: cfg.SessionCookieName,
		ForceSecure:       cfg.CookieSecure,
		FrontendURL:       cfg.FrontendURL,
		SessionTTL:        cfg.SessionTTL,
	})

	userSvc := userService.NewUserService(userRepository, redisClient, cfg.RateLimitRegister)
	userHandler := userHttp.NewUserHandler(userSvc)

	studentRepository := studentRepo.NewStudentRepository(db)
	studentSvc := studentService.NewStudentService(studentRepository)
	studentHandler := studentHttp.NewStudentHandler(studentSvc, cfg.DefaultPageSize, cfg.MaxPageSize)

	teacherRepository := teacherRepo.NewTeacherRepository(db)
	teacherSvc := teacherService.NewTeacherService(teacherRepository)
	teacherHandler := teacherHttp.NewTeacherHandler(teacherSvc, cfg.DefaultPageSize, cfg.MaxPageSize)

	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo.NewAttendanceRepository(db), teacherRepository)
	attendanceHandler := attendanceHttp.NewAttendanceHandler(attendanceSvc)

	statSvc := statService.NewStatService(userRepository, studentRepository, teacherRepository)
	statHandler := statHttp.NewStatHandler(statSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/health/"},
	}))

	router.GET("/health/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(userRepository, tokenSvc)

	// Token endpoints authenticate through their body, not a bearer header
	token := router.Group("/token")
	{
		token.POST("/", authHandler.Login)
		token.POST("/refresh/", authHandler.Refresh)
		token.POST("/verify/", authHandler.Verify)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/logout/", authHandler.Logout)
		auth.GET("/session-to-token/", authHandler.SessionToToken)
		auth.GET("/google/login/", authHandler.GoogleLogin)
	}
	router.GET("/oauth/complete/google-oauth2/", authHandler.GoogleCallback)
	router.POST("/users/register/", userHandler.Register)

	authenticated := router.Group("")
	authenticated.Use(authMiddleware.Authenticate())
	{
		protected := authenticated.Group("")
		protected.Use(authMiddleware.RequireAuth())
		{
			protected.GET("/token/introspect/", authHandler.Introspect)
			protected.GET("/auth/permissions/", authHandler.Permissions)
			protected.GET("/users/me/", userHandler.Me)
			protected.GET("/stats/", statHandler.Overview)
		}

		students := authenticated.Group("/students")
		studentPolicy := permission.TeacherOrAdmin()
		{
			students.GET("/", authMiddleware.Authorize(studentPolicy, permission.ActionList), studentHandler.List)
			students.POST("/", authMiddleware.Authorize(studentPolicy, permission.ActionCreate), studentHandler.Create)
			students.POST("/bulk_delete/", authMiddleware.Authorize(studentPolicy, permission.ActionBulkDelete), studentHandler.BulkDelete)
			students.GET("/:seq/", authMiddleware.Authorize(studentPolicy, permission.ActionRetrieve), studentHandler.Retrieve)
			students.GET("/:seq/fees/", authMiddleware.Authorize(studentPolicy, permission.ActionSummary), studentHandler.Fees)
			students.PUT("/:seq/", authMiddleware.Authorize(studentPolicy, permission.ActionUpdate), studentHandler.Update)
			students.PATCH("/:seq/", authMiddleware.Authorize(studentPolicy, permission.ActionPartialUpdate), studentHandler.Update)
			students.DELETE("/:seq/", authMiddleware.Authorize(studentPolicy, permission.ActionDestroy), studentHandler.Delete)
		}

		teachers := authenticated.Group("/teachers")
		teacherPolicy := permission.AdminOrReadOnly()
		{
			teachers.GET("/", authMiddleware.Authorize(teacherPolicy, permission.ActionList), teacherHandler.List)
			teachers.POST("/", authMiddleware.Authorize(teacherPolicy, permission.ActionCreate), teacherHandler.Create)
			teachers.POST("/bulk_delete/", authMiddleware.Authorize(teacherPolicy, permission.ActionBulkDelete), teacherHandler.BulkDelete)
			teachers.GET("/:id/", authMiddleware.Authorize(teacherPolicy, permission.ActionRetrieve), teacherHandler.Retrieve)
			teachers.GET("/:id/salary/", authMiddleware.Authorize(teacherPolicy, permission.ActionSummary), teacherHandler.Salary)
			teachers.PUT("/:id/", authMiddleware.Authorize(teacherPolicy, permission.ActionUpdate), teacherHandler.Update)
			teachers.PATCH("/:id/", authMiddleware.Authorize(teacherPolicy, permission.ActionPartialUpdate), teacherHandler.PartialUpdate)
			teachers.DELETE("/:id/", authMiddleware.Authorize(teacherPolicy, permission.ActionDestroy), teacherHandler.Delete)
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.POST("/", authMiddleware.Authorize(teacherPolicy, permission.ActionCreate), attendanceHandler.Save)
			attendance.GET("/:teacherId/:year/:month/", authMiddleware.Authorize(teacherPolicy, permission.ActionRetrieve), attendanceHandler.Get)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", authService.HeaderUserEmail},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
