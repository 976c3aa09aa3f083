package controller

import (
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// attemptError 把答题路径的业务错误映射成 HTTP 状态码
func attemptError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrAttemptNotFound), errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAttemptNotOwned):
		util.Forbidden(ctx)
	case errors.Is(err, util.ErrQuizNotPublished), errors.Is(err, util.ErrNotEnrolled):
		util.Error(ctx, 403, err.Error())
	case errors.Is(err, util.ErrQuizNotYetOpen), errors.Is(err, util.ErrQuizWindowClosed):
		util.Error(ctx, 403, err.Error())
	case errors.Is(err, util.ErrAttemptCompleted):
		util.Conflict(ctx, err.Error())
	case errors.Is(err, util.ErrAttemptExpired):
		util.Gone(ctx, err.Error())
	case errors.Is(err, util.ErrAttemptInProgress), errors.Is(err, util.ErrResultsNotAvailable):
		util.Error(ctx, 403, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// StartAttempt godoc
// @Summary 开始答题
// @Description 为当前学生开始一次测验答题，已有未完成的尝试则直接返回
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.QuizAttempt} "成功"
// @Failure 403 {object} util.Response "未选课或测验不在窗口内"
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/quizzes/{id}/attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.AttemptService.StartAttempt(ctx.Param("id"), user.UserID)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// GetAttemptView godoc
// @Summary 获取答题视图
// @Description 返回脱敏的题目列表（不含答案）、已保存的作答和剩余时间；超时则强制提交并返回 410
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "尝试ID"
// @Success 200 {object} util.Response{data=service.TakingView} "成功"
// @Failure 410 {object} util.Response "已超时，强制提交"
// @Router /api/attempts/{id} [get]
func (c *AttemptController) GetAttemptView(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.AttemptService.GetAttemptView(ctx.Param("id"), user.UserID)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

type SaveAnswerRequest struct {
	QuestionID       string  `json:"questionId" binding:"required"`
	SelectedOptionID *string `json:"selectedOptionId"`
	TextAnswer       *string `json:"textAnswer"`
}

// SaveAnswer godoc
// @Summary 保存单题作答
// @Description 自动保存，按 (尝试, 题目) 覆盖写入；两个字段都为空表示清除作答
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "尝试ID"
// @Param   body body SaveAnswerRequest true "作答内容"
// @Success 200 {object} util.Response "保存成功"
// @Failure 410 {object} util.Response "已超时，强制提交"
// @Router /api/attempts/{id}/answers [put]
func (c *AttemptController) SaveAnswer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.AttemptService.SaveAnswer(ctx.Param("id"), user.UserID, req.QuestionID, req.SelectedOptionID, req.TextAnswer)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type SubmitQuizRequest struct {
	Answers []service.AnswerSubmission `json:"answers"`
}

// SubmitQuiz godoc
// @Summary 提交测验
// @Description 落库整卷答案并评分，迁移到 SUBMITTED；并发重复提交返回 409
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "尝试ID"
// @Param   body body SubmitQuizRequest true "整卷答案"
// @Success 200 {object} util.Response{data=service.SubmitResult} "成功"
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/attempts/{id}/submit [post]
func (c *AttemptController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitQuiz(ctx.Param("id"), user.UserID, req.Answers)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetRemainingTime godoc
// @Summary 查询剩余时间
// @Description 纯查询接口，不触发强制提交
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "尝试ID"
// @Success 200 {object} util.Response{data=service.RemainingTime} "成功"
// @Router /api/attempts/{id}/time [get]
func (c *AttemptController) GetRemainingTime(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	rt, err := c.AttemptService.GetRemainingTime(ctx.Param("id"), user.UserID)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	util.Success(ctx, rt)
}

// GetQuizResult godoc
// @Summary 查询答题结果
// @Description 提交后的成绩视图，受 showResults / allowReview 两个开关约束
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "尝试ID"
// @Success 200 {object} util.Response{data=service.ResultView} "成功"
// @Failure 403 {object} util.Response "结果未开放"
// @Router /api/attempts/{id}/result [get]
func (c *AttemptController) GetQuizResult(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.AttemptService.GetQuizResult(ctx.Param("id"), user.UserID)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
