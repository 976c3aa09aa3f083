package controller

import (
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

// Gradebook godoc
// @Summary 成绩册
// @Description 教师查看某测验的全部学生提交，可按姓名搜索
// @Tags 成绩
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Param   studentName query string false "学生姓名模糊搜索"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/quizzes/{id}/gradebook [get]
func (c *GradeController) Gradebook(ctx *gin.Context) {
	page, limit := pagination(ctx)
	rows, total, err := c.GradeService.Gradebook(ctx.Param("id"), page, limit, ctx.Query("studentName"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

// Transcript godoc
// @Summary 我的成绩单
// @Description 学生查看自己全部已提交测验的成绩与通过情况
// @Tags 成绩
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.TranscriptEntry} "成功"
// @Router /api/transcript [get]
func (c *GradeController) Transcript(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	entries, err := c.GradeService.Transcript(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// GradeAnswer godoc
// @Summary 人工批改
// @Description 教师批改简答题，尝试总分重算并进入 GRADED
// @Tags 成绩
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "尝试ID"
// @Param   answerId path string true "答案ID"
// @Param   body body service.ManualGradeReq true "评分"
// @Success 200 {object} util.Response "成功"
// @Failure 400 {object} util.Response "分值越界"
// @Router /api/attempts/{id}/answers/{answerId}/grade [put]
func (c *GradeController) GradeAnswer(ctx *gin.Context) {
	var req service.ManualGradeReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.GradeService.GradeAnswer(ctx.Param("id"), ctx.Param("answerId"), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrQuestionNotFound), errors.Is(err, util.ErrQuizNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAttemptInProgress):
			util.Conflict(ctx, err.Error())
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, nil)
}
