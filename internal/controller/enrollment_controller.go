package controller

import (
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Enroll godoc
// @Summary 选课
// @Description 学生加入某个开课，重复选课返回 409
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   offeringId path int true "开课ID"
// @Success 201 {object} util.Response{data=model.Enrollment} "选课成功"
// @Failure 409 {object} util.Response "已选过该课"
// @Router /api/offerings/{offeringId}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	offeringID, ok := pathID(ctx, "offeringId")
	if !ok {
		return
	}
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(offeringID, user.UserID)
	if err != nil {
		if errors.Is(err, util.ErrAlreadyEnrolled) {
			util.Conflict(ctx, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, enrollment)
}

// Drop godoc
// @Summary 退课
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   offeringId path int true "开课ID"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "未选该课"
// @Router /api/offerings/{offeringId}/enroll [delete]
func (c *EnrollmentController) Drop(ctx *gin.Context) {
	offeringID, ok := pathID(ctx, "offeringId")
	if !ok {
		return
	}
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.EnrollmentService.Drop(offeringID, user.UserID); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}

// ListByOffering godoc
// @Summary 开课名单
// @Description 教师查看某开课的选课学生
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Param   offeringId path int true "开课ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/offerings/{offeringId}/enrollments [get]
func (c *EnrollmentController) ListByOffering(ctx *gin.Context) {
	offeringID, ok := pathID(ctx, "offeringId")
	if !ok {
		return
	}
	page, limit := pagination(ctx)

	rows, total, err := c.EnrollmentService.ListByOffering(offeringID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

// MyEnrollments godoc
// @Summary 我的选课
// @Tags 选课
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment} "成功"
// @Router /api/enrollments [get]
func (c *EnrollmentController) MyEnrollments(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollments, err := c.EnrollmentService.ListByStudent(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}
