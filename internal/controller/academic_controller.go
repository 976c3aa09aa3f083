package controller

import (
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AcademicController 学院/系/专业/课程/开课的管理接口
type AcademicController struct {
	AcademicService *service.AcademicService
}

func NewAcademicController(academicService *service.AcademicService) *AcademicController {
	return &AcademicController{AcademicService: academicService}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// CreateCollege godoc
// @Summary 创建学院
// @Tags 教务管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CollegeReq true "学院信息"
// @Success 201 {object} util.Response{data=model.College} "创建成功"
// @Router /api/admin/colleges [post]
func (c *AcademicController) CreateCollege(ctx *gin.Context) {
	var req service.CollegeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	college, err := c.AcademicService.CreateCollege(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, college)
}

// UpdateCollege godoc
// @Summary 更新学院
// @Tags 教务管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "学院ID"
// @Param   body body service.CollegeReq true "学院信息"
// @Success 200 {object} util.Response{data=model.College} "成功"
// @Router /api/admin/colleges/{id} [put]
func (c *AcademicController) UpdateCollege(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CollegeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	college, err := c.AcademicService.UpdateCollege(id, &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, college)
}

// DeleteCollege godoc
// @Summary 删除学院
// @Tags 教务管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "学院ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/colleges/{id} [delete]
func (c *AcademicController) DeleteCollege(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AcademicService.DeleteCollege(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListColleges godoc
// @Summary 学院列表
// @Tags 教务管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.College} "成功"
// @Router /api/colleges [get]
func (c *AcademicController) ListColleges(ctx *gin.Context) {
	colleges, err := c.AcademicService.ListColleges()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, colleges)
}

// CreateDepartment godoc
// @Summary 创建系
// @Tags 教务管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.DepartmentReq true "系信息"
// @Success 201 {object} util.Response{data=model.Department} "创建成功"
// @Router /api/admin/departments [post]
func (c *AcademicController) CreateDepartment(ctx *gin.Context) {
	var req service.DepartmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	dept, err := c.AcademicService.CreateDepartment(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, dept)
}

// UpdateDepartment godoc
// @Summary 更新系
// @Tags 教务管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "系ID"
// @Param   body body service.DepartmentReq true "系信息"
// @Success 200 {object} util.Response{data=model.Department} "成功"
// @Router /api/admin/departments/{id} [put]
func (c *AcademicController) UpdateDepartment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.DepartmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	dept, err := c.AcademicService.UpdateDepartment(id, &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, dept)
}

// DeleteDepartment godoc
// @Summary 删除系
// @Tags 教务管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "系ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/departments/{id} [delete]
func (c *AcademicController) DeleteDepartment(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AcademicService.DeleteDepartment(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListDepartments godoc
// @Summary 系列表
// @Tags 教务管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   collegeId query int false "按学院过滤"
// @Success 200 {object} util.Response{data=[]model.Department} "成功"
// @Router /api/departments [get]
func (c *AcademicController) ListDepartments(ctx *gin.Context) {
	collegeID := util.MustParseUint(ctx.Query("collegeId"))
	depts, err := c.AcademicService.ListDepartments(collegeID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, depts)
}

// CreateMajor godoc
// @Summary 创建专业
// @Tags 教务管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.MajorReq true "专业信息"
// @Success 201 {object} util.Response{data=model.Major} "创建成功"
// @Router /api/admin/majors [post]
func (c *AcademicController) CreateMajor(ctx *gin.Context) {
	var req service.MajorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	major, err := c.AcademicService.CreateMajor(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, major)
}

// UpdateMajor godoc
// @Summary 更新专业
// @Tags 教务管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "专业ID"
// @Param   body body service.MajorReq true "专业信息"
// @Success 200 {object} util.Response{data=model.Major} "成功"
// @Router /api/admin/majors/{id} [put]
func (c *AcademicController) UpdateMajor(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.MajorReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	major, err := c.AcademicService.UpdateMajor(id, &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, major)
}

// DeleteMajor godoc
// @Summary 删除专业
// @Tags 教务管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "专业ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/majors/{id} [delete]
func (c *AcademicController) DeleteMajor(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AcademicService.DeleteMajor(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMajors godoc
// @Summary 专业列表
// @Tags 教务管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   departmentId query int false "按系过滤"
// @Success 200 {object} util.Response{data=[]model.Major} "成功"
// @Router /api/majors [get]
func (c *AcademicController) ListMajors(ctx *gin.Context) {
	departmentID := util.MustParseUint(ctx.Query("departmentId"))
	majors, err := c.AcademicService.ListMajors(departmentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, majors)
}

// CreateCourse godoc
// @Summary 创建课程
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CourseReq true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Router /api/courses [post]
func (c *AcademicController) CreateCourse(ctx *gin.Context) {
	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.AcademicService.CreateCourse(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   body body service.CourseReq true "课程信息"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Router /api/courses/{id} [put]
func (c *AcademicController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.CourseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.AcademicService.UpdateCourse(id, &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Tags 课程管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/courses/{id} [delete]
func (c *AcademicController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AcademicService.DeleteCourse(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetCourse godoc
// @Summary 课程详情
// @Tags 课程管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Router /api/courses/{id} [get]
func (c *AcademicController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	course, err := c.AcademicService.GetCourse(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, course)
}

// ListCourses godoc
// @Summary 课程列表
// @Tags 课程管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   departmentId query int false "按系过滤"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/courses [get]
func (c *AcademicController) ListCourses(ctx *gin.Context) {
	departmentID := util.MustParseUint(ctx.Query("departmentId"))
	page, limit := pagination(ctx)
	courses, total, err := c.AcademicService.ListCourses(departmentID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// CreateOffering godoc
// @Summary 创建开课
// @Description 某学期开设某课程的一个教学班
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.OfferingReq true "开课信息"
// @Success 201 {object} util.Response{data=model.CourseOffering} "创建成功"
// @Router /api/offerings [post]
func (c *AcademicController) CreateOffering(ctx *gin.Context) {
	var req service.OfferingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	offering, err := c.AcademicService.CreateOffering(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, offering)
}

// UpdateOffering godoc
// @Summary 更新开课
// @Tags 课程管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "开课ID"
// @Param   body body service.OfferingReq true "开课信息"
// @Success 200 {object} util.Response{data=model.CourseOffering} "成功"
// @Router /api/offerings/{id} [put]
func (c *AcademicController) UpdateOffering(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.OfferingReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	offering, err := c.AcademicService.UpdateOffering(id, &req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, offering)
}

// DeleteOffering godoc
// @Summary 删除开课
// @Tags 课程管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "开课ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/offerings/{id} [delete]
func (c *AcademicController) DeleteOffering(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.AcademicService.DeleteOffering(id); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetOffering godoc
// @Summary 开课详情
// @Tags 课程管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   offeringId path int true "开课ID"
// @Success 200 {object} util.Response{data=model.CourseOffering} "成功"
// @Router /api/offerings/{offeringId} [get]
func (c *AcademicController) GetOffering(ctx *gin.Context) {
	id, ok := pathID(ctx, "offeringId")
	if !ok {
		return
	}
	offering, err := c.AcademicService.GetOffering(id)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, offering)
}

// ListOfferings godoc
// @Summary 开课列表
// @Tags 课程管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId query int false "按课程过滤"
// @Param   term query string false "按学期过滤"
// @Success 200 {object} util.Response{data=[]model.CourseOffering} "成功"
// @Router /api/offerings [get]
func (c *AcademicController) ListOfferings(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Query("courseId"))
	offerings, err := c.AcademicService.ListOfferings(courseID, ctx.Query("term"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, offerings)
}
