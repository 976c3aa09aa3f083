package app

import (
	"campus_lms_backend/docs"
	"campus_lms_backend/internal/config"
	"campus_lms_backend/internal/middleware"
	"campus_lms_backend/internal/model"
	"campus_lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerCommonRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c, s)
		a.registerAdminRoutes(authGroup, c, s)
	}
}

// registerCommonRoutes 所有已登录角色可用
func (a *App) registerCommonRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.PUT("/profile/password", c.user.ChangePassword)

	// 目录浏览
	rg.GET("/colleges", c.academic.ListColleges)
	rg.GET("/departments", c.academic.ListDepartments)
	rg.GET("/majors", c.academic.ListMajors)
	rg.GET("/courses", c.academic.ListCourses)
	rg.GET("/courses/:id", c.academic.GetCourse)
	rg.GET("/offerings", c.academic.ListOfferings)
	rg.GET("/offerings/:offeringId", c.academic.GetOffering)
	rg.GET("/courses/:id/resources", c.resource.ListByCourse)
	rg.GET("/resources/:id", c.resource.Get)

	// 通知
	rg.GET("/notifications", c.notification.List)
	rg.GET("/notifications/unread-count", c.notification.UnreadCount)
	rg.PUT("/notifications/:id/read", c.notification.MarkRead)
	rg.PUT("/notifications/read-all", c.notification.MarkAllRead)
}

// registerStudentRoutes 学生答题与选课
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/offerings/:offeringId/enroll", c.enrollment.Enroll)
	rg.DELETE("/offerings/:offeringId/enroll", c.enrollment.Drop)
	rg.GET("/enrollments", c.enrollment.MyEnrollments)

	rg.GET("/offerings/:offeringId/quizzes/published", c.quiz.ListPublishedQuizzes)

	// 答题生命周期
	rg.POST("/quizzes/:id/attempts", c.attempt.StartAttempt)
	rg.GET("/attempts/:id", c.attempt.GetAttemptView)
	rg.PUT("/attempts/:id/answers", c.attempt.SaveAnswer)
	rg.POST("/attempts/:id/submit", c.attempt.SubmitQuiz)
	rg.GET("/attempts/:id/time", c.attempt.GetRemainingTime)
	rg.GET("/attempts/:id/result", c.attempt.GetQuizResult)

	rg.GET("/transcript", c.grade.Transcript)
}

// registerInstructorRoutes 教师出题、发布、成绩与资源管理
func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers, s *services) {
	instructor := rg.Group("/")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		quizManage := instructor.Group("/")
		quizManage.Use(middleware.PermissionMiddleware(s.permission, model.PermQuizManage))
		{
			quizManage.POST("/offerings/:offeringId/quizzes", c.quiz.CreateQuiz)
			quizManage.GET("/offerings/:offeringId/quizzes", c.quiz.ListQuizzes)
			quizManage.GET("/quizzes/:id", c.quiz.GetQuiz)
			quizManage.PUT("/quizzes/:id", c.quiz.UpdateQuiz)
			quizManage.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
			quizManage.POST("/quizzes/:id/questions", c.quiz.AddQuestion)
			quizManage.PUT("/quizzes/:id/questions/:questionId", c.quiz.UpdateQuestion)
			quizManage.DELETE("/quizzes/:id/questions/:questionId", c.quiz.DeleteQuestion)
			quizManage.POST("/quizzes/:id/questions/generate", c.quiz.GenerateQuestions)
			quizManage.POST("/quizzes/:id/publish", c.quiz.PublishQuiz)
			quizManage.POST("/quizzes/:id/close", c.quiz.CloseQuiz)
			quizManage.POST("/quizzes/:id/reopen", c.quiz.ReopenQuiz)
		}

		grading := instructor.Group("/")
		grading.Use(middleware.PermissionMiddleware(s.permission, model.PermQuizGrade))
		{
			grading.GET("/quizzes/:id/gradebook", c.grade.Gradebook)
			grading.PUT("/attempts/:id/answers/:answerId/grade", c.grade.GradeAnswer)
		}

		resources := instructor.Group("/")
		resources.Use(middleware.PermissionMiddleware(s.permission, model.PermResourceManage))
		{
			resources.POST("/courses/:id/resources", c.resource.Upload)
			resources.DELETE("/resources/:id", c.resource.Delete)
		}

		instructor.GET("/offerings/:offeringId/enrollments", c.enrollment.ListByOffering)
	}
}

// registerAdminRoutes 教务与系统管理
func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers, s *services) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		academic := admin.Group("/")
		academic.Use(middleware.PermissionMiddleware(s.permission, model.PermAcademicManage))
		{
			academic.POST("/colleges", c.academic.CreateCollege)
			academic.PUT("/colleges/:id", c.academic.UpdateCollege)
			academic.DELETE("/colleges/:id", c.academic.DeleteCollege)
			academic.POST("/departments", c.academic.CreateDepartment)
			academic.PUT("/departments/:id", c.academic.UpdateDepartment)
			academic.DELETE("/departments/:id", c.academic.DeleteDepartment)
			academic.POST("/majors", c.academic.CreateMajor)
			academic.PUT("/majors/:id", c.academic.UpdateMajor)
			academic.DELETE("/majors/:id", c.academic.DeleteMajor)
		}

		courses := admin.Group("/")
		courses.Use(middleware.PermissionMiddleware(s.permission, model.PermCourseManage))
		{
			courses.POST("/courses", c.academic.CreateCourse)
			courses.PUT("/courses/:id", c.academic.UpdateCourse)
			courses.DELETE("/courses/:id", c.academic.DeleteCourse)
			courses.POST("/offerings", c.academic.CreateOffering)
			courses.PUT("/offerings/:id", c.academic.UpdateOffering)
			courses.DELETE("/offerings/:id", c.academic.DeleteOffering)
		}

		admin.GET("/users", c.user.ListUsers)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)

		roles := admin.Group("/")
		roles.Use(middleware.PermissionMiddleware(s.permission, model.PermRoleManage))
		{
			roles.GET("/roles", c.role.ListRoles)
			roles.GET("/permissions", c.role.ListPermissions)
			roles.PUT("/roles/:id/permissions", c.role.UpdateRolePermissions)
		}
	}
}
