package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/research-admin-gateway/internal/handler"
	"github.com/noah-isme/research-admin-gateway/internal/middleware"
	"github.com/noah-isme/research-admin-gateway/internal/models"
	"github.com/noah-isme/research-admin-gateway/internal/service"
	"github.com/noah-isme/research-admin-gateway/pkg/config"
	"github.com/noah-isme/research-admin-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/research-admin-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/research-admin-gateway/pkg/middleware/requestid"
)

type routeHandlers struct {
	students    *handler.StudentHandler
	catalog     *handler.CatalogHandler
	faculty     *handler.FacultyHandler
	proposals   *handler.ProposalHandler
	books       *handler.BookHandler
	results     *handler.ResultsHandler
	preferences *handler.PreferenceHandler
	metrics     *handler.MetricsHandler
}

var admins = []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}

func newRouter(cfg *config.Config, logr *zap.Logger, auth *service.AuthService, metrics *service.MetricsService, h routeHandlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())

	// Download links are opened by the browser without a bearer token; the
	// signed token is the credential.
	api.GET("/results/download/:token", h.results.Download)

	secured := api.Group("")
	secured.Use(middleware.JWT(auth), middleware.QueryRefresh())
	adminOnly := middleware.RequireRoles(admins...)

	secured.GET("/metrics/summary", adminOnly, h.metrics.Summary)

	students := secured.Group("/students")
	students.GET("", h.students.List)
	students.GET("/:id", h.students.Get)
	students.POST("", adminOnly, h.students.Create)
	students.PUT("/:id", adminOnly, h.students.Update)
	students.DELETE("/:id", adminOnly, h.students.Delete)
	students.PUT("/:id/status", adminOnly, h.students.UpdateStatus)
	students.POST("/:id/supervisors", adminOnly, h.students.AssignSupervisor)

	secured.GET("/campuses", h.catalog.ListCampuses)
	secured.POST("/campuses", adminOnly, h.catalog.CreateCampus)
	secured.PUT("/campuses/:id", adminOnly, h.catalog.UpdateCampus)
	secured.DELETE("/campuses/:id", adminOnly, h.catalog.DeleteCampus)
	secured.GET("/schools", h.catalog.ListSchools)
	secured.POST("/schools", adminOnly, h.catalog.CreateSchool)
	secured.PUT("/schools/:id", adminOnly, h.catalog.UpdateSchool)
	secured.DELETE("/schools/:id", adminOnly, h.catalog.DeleteSchool)
	secured.GET("/departments", h.catalog.ListDepartments)
	secured.POST("/departments", adminOnly, h.catalog.CreateDepartment)
	secured.PUT("/departments/:id", adminOnly, h.catalog.UpdateDepartment)
	secured.DELETE("/departments/:id", adminOnly, h.catalog.DeleteDepartment)
	secured.GET("/courses", h.catalog.ListCourses)
	secured.POST("/courses", adminOnly, h.catalog.CreateCourse)
	secured.PUT("/courses/:id", adminOnly, h.catalog.UpdateCourse)
	secured.DELETE("/courses/:id", adminOnly, h.catalog.DeleteCourse)

	faculty := secured.Group("/faculty")
	faculty.GET("", h.faculty.List)
	faculty.POST("", adminOnly, h.faculty.Create)
	faculty.PUT("/:id", adminOnly, h.faculty.Update)
	faculty.DELETE("/:id", adminOnly, h.faculty.Delete)

	proposals := secured.Group("/proposals")
	proposals.GET("", h.proposals.List)
	proposals.GET("/:id", h.proposals.Get)
	proposals.PUT("/:id/status", adminOnly, h.proposals.UpdateStatus)
	proposals.POST("/:id/reviewers", adminOnly, h.proposals.AssignReviewer)
	proposals.DELETE("/:id/reviewers/:reviewerId", adminOnly, h.proposals.RemoveReviewer)
	proposals.PUT("/:id/reviewers/:reviewerId/mark", middleware.RequireRolesOrSelf("reviewerId", admins...), h.proposals.SubmitReviewerMark)
	proposals.POST("/:id/defenses", adminOnly, h.proposals.ScheduleDefense)
	secured.PUT("/defenses/:id/verdict", adminOnly, h.proposals.RecordDefenseVerdict)

	books := secured.Group("/books")
	books.GET("", h.books.List)
	books.GET("/:id", h.books.Get)
	books.PUT("/:id/status", adminOnly, h.books.UpdateStatus)
	books.POST("/:id/examiners", adminOnly, h.books.AssignExaminer)
	books.DELETE("/:id/examiners/:examinerId", adminOnly, h.books.RemoveExaminer)
	books.PUT("/:id/examiners/:examinerId/mark", middleware.RequireRolesOrSelf("examinerId", admins...), h.books.SubmitExaminerMark)
	books.POST("/:id/vivas", adminOnly, h.books.ScheduleViva)
	books.POST("/:id/submission", adminOnly, h.books.UploadSubmission)
	books.POST("/:id/report", adminOnly, h.books.UploadReport)
	secured.PUT("/vivas/:id/result", adminOnly, h.books.RecordVivaResult)

	results := secured.Group("/results")
	results.GET("", h.results.Board)
	results.POST("/actions/:action", adminOnly, h.results.Action)
	results.POST("/export", adminOnly, h.results.Export)
	results.GET("/runs", adminOnly, h.results.Runs)
	results.GET("/runs/:id/items", adminOnly, h.results.RunItems)

	secured.GET("/preferences", h.preferences.All)
	secured.GET("/preferences/:table", h.preferences.Get)
	secured.PUT("/preferences/:table", h.preferences.Update)
	secured.POST("/session/logout", h.preferences.Logout)

	return r
}
