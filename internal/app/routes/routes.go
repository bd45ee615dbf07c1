package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/yigit/unisession/internal/app/controllers"
	"github.com/yigit/unisession/internal/app/models/dto"
	"github.com/yigit/unisession/internal/pkg/metrics"

	_ "github.com/yigit/unisession/docs" // registers the OpenAPI document
)

// WelcomeMessage is returned by GET /
const WelcomeMessage = "Welcome to the University Session API. Visit /swagger/index.html for documentation."

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Faculty    *controllers.FacultyController
	Department *controllers.DepartmentController
	Teacher    *controllers.TeacherController
	Group      *controllers.GroupController
	Subject    *controllers.SubjectController
	Session    *controllers.SessionController
	Report     *controllers.ReportController
}

// SetupRouter configures all application routes under basePath
func SetupRouter(router *gin.Engine, basePath string, c Controllers, m *metrics.Metrics) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.DefaultModelsExpandDepth(1)))

	api := router.Group(basePath)

	api.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.MessageResponse{Message: WelcomeMessage})
	})

	faculties := api.Group("/faculties")
	{
		faculties.POST("/", c.Faculty.CreateFaculty)
		faculties.GET("/", c.Faculty.ListFaculties)
		faculties.GET("/:id", c.Faculty.GetFacultyByID)
	}

	departments := api.Group("/departments")
	{
		departments.POST("/", c.Department.CreateDepartment)
		departments.GET("/", c.Department.ListDepartments)
		departments.GET("/:id", c.Department.GetDepartmentByID)
	}

	teachers := api.Group("/teachers")
	{
		teachers.POST("/", c.Teacher.CreateTeacher)
		teachers.GET("/", c.Teacher.ListTeachers)
		teachers.GET("/:id", c.Teacher.GetTeacherByID)
	}

	groups := api.Group("/groups")
	{
		groups.POST("/", c.Group.CreateGroup)
		groups.GET("/", c.Group.ListGroups)
		groups.GET("/search/", c.Group.SearchGroups)
		groups.PUT("/promote/", c.Group.PromoteGroups)
		groups.GET("/:id", c.Group.GetGroupByID)
	}

	subjects := api.Group("/subjects")
	{
		subjects.POST("/", c.Subject.CreateSubject)
		subjects.GET("/", c.Subject.ListSubjects)
		subjects.GET("/search-trgm/", c.Subject.SearchSubjectsTrigram)
		subjects.GET("/search-regex/", c.Subject.SearchSubjectsRegex)
		subjects.GET("/:id", c.Subject.GetSubjectByID)
	}

	sessions := api.Group("/sessions")
	{
		sessions.POST("/", c.Session.CreateSession)
		sessions.GET("/", c.Session.ListSessions)
		sessions.GET("/details/", c.Session.ListSessionDetails)
		sessions.GET("/:id", c.Session.GetSessionByID)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/students-per-faculty/", c.Report.StudentsPerFaculty)
	}
}
