// Package web gin server
package web

import (
	"net/http"
	"net/url"
	"strings"

	ginMw "github.com/Laisky/gin-middlewares/v7"
	gconfig "github.com/Laisky/go-config/v2"
	"github.com/Laisky/zap"
	"github.com/gin-gonic/gin"

	blogCtl "github.com/aahabhisheksingh/studyhub-api/internal/web/blog/controller"
	coursesCtl "github.com/aahabhisheksingh/studyhub-api/internal/web/courses/controller"
	userCtl "github.com/aahabhisheksingh/studyhub-api/internal/web/user/controller"
	"github.com/aahabhisheksingh/studyhub-api/library/log"
)

var (
	server = gin.New()
)

func RunServer(addr string) {
	server.Use(
		gin.Recovery(),
		ginMw.NewLoggerMiddleware(
			ginMw.WithLoggerMwColored(),
			ginMw.WithLevel(log.Logger.Level().String()),
			ginMw.WithLogger(log.Logger.Named("gin")),
		),
		allowCORS,
	)
	if !gconfig.Shared.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := ginMw.EnableMetric(server); err != nil {
		log.Logger.Panic("enable metric server", zap.Error(err))
	}

	server.Any("/health", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world")
	})

	mountRoutes(server)

	log.Logger.Info("listening on http", zap.String("addr", addr))
	log.Logger.Panic("httpServer exit", zap.Error(server.Run(addr)))
}

func mountRoutes(e *gin.Engine) {
	api := e.Group("/api/v1")

	// session
	api.POST("/login", userCtl.Instance.Login)
	api.POST("/login/google", userCtl.Instance.LoginGoogle)
	api.POST("/signup", userCtl.Instance.Signup)
	api.POST("/logout", userCtl.Instance.Logout)
	api.GET("/me", userCtl.Instance.Me)

	// public reads
	api.GET("/courses", coursesCtl.Instance.ListCourses)
	api.GET("/courses/:course", coursesCtl.Instance.GetCourse)
	api.GET("/courses/:course/years/:year/semesters/:semester/subjects",
		coursesCtl.Instance.ListSubjects)
	api.GET("/courses/:course/years/:year/semesters/:semester/subjects/:subject",
		coursesCtl.Instance.GetSubject)
	api.GET("/posts", blogCtl.Instance.ListPublished)
	api.GET("/posts/:post", blogCtl.Instance.GetPost)

	// owner-only admin surface
	admin := api.Group("/admin", userCtl.Instance.RequireOwner())

	admin.POST("/courses", coursesCtl.Instance.CreateCourse)
	admin.DELETE("/courses/:course", coursesCtl.Instance.DeleteCourse)
	admin.POST("/courses/:course/years", coursesCtl.Instance.AddYear)
	admin.PUT("/courses/:course/years/:year", coursesCtl.Instance.RenameYear)
	admin.DELETE("/courses/:course/years/:year", coursesCtl.Instance.DeleteYear)

	years := admin.Group("/courses/:course/years/:year")
	years.POST("/semesters", coursesCtl.Instance.AddSemester)
	years.PUT("/semesters/:semester", coursesCtl.Instance.RenameSemester)
	years.DELETE("/semesters/:semester", coursesCtl.Instance.DeleteSemester)

	semesters := years.Group("/semesters/:semester")
	semesters.POST("/subjects", coursesCtl.Instance.CreateSubject)
	semesters.PUT("/subjects/:subject", coursesCtl.Instance.UpdateSubject)
	semesters.DELETE("/subjects/:subject", coursesCtl.Instance.DeleteSubject)

	subjects := semesters.Group("/subjects/:subject")
	subjects.POST("/links", coursesCtl.Instance.AddLink)
	subjects.DELETE("/links/:link", coursesCtl.Instance.RemoveLink)
	subjects.POST("/notes", coursesCtl.Instance.UploadNotes)
	subjects.PUT("/notes/:note", coursesCtl.Instance.RenameNote)
	subjects.DELETE("/notes/:note", coursesCtl.Instance.RemoveNote)

	admin.GET("/posts", blogCtl.Instance.ListAll)
	admin.POST("/posts", blogCtl.Instance.SavePost)
	admin.DELETE("/posts/:post", blogCtl.Instance.DeletePost)
}

func allowCORS(ctx *gin.Context) {
	origin := ctx.Request.Header.Get("Origin")
	allowedOrigin := ""

	if origin != "" {
		parsedOriginURL, err := url.Parse(origin)
		if err == nil {
			host := strings.ToLower(parsedOriginURL.Hostname())
			allowedDomain := strings.ToLower(
				gconfig.Shared.GetString("settings.cors_domain"))
			if allowedDomain != "" &&
				(host == allowedDomain || strings.HasSuffix(host, "."+allowedDomain)) {
				allowedOrigin = origin
			}
		}
	}

	if allowedOrigin != "" {
		ctx.Header("Access-Control-Allow-Origin", allowedOrigin)
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS, HEAD")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, Origin, X-CSRF-Token, X-Requested-With")
		ctx.Header("Access-Control-Max-Age", "86400") // 24 hours
		ctx.Header("Vary", "Origin")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
	} else if origin != "" && ctx.Request.Method == http.MethodOptions {
		// deny preflight from disallowed origins
		ctx.AbortWithStatus(http.StatusForbidden)
		return
	}

	ctx.Next()
}
