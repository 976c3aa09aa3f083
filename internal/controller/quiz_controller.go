package controller

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func quizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizNotEditable):
		util.Conflict(ctx, err.Error())
	default:
		util.BadRequest(ctx, err.Error())
	}
}

// CreateQuiz godoc
// @Summary 创建测验
// @Description 在指定开课下创建一个 DRAFT 测验
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   offeringId path int true "开课ID"
// @Param   body body service.QuizReq true "测验配置"
// @Success 201 {object} util.Response{data=model.Quiz} "创建成功"
// @Router /api/offerings/{offeringId}/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	offeringID, err := strconv.ParseUint(ctx.Param("offeringId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid offering id")
		return
	}

	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(uint(offeringID), user.UserID, req)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary 更新测验配置
// @Description 只允许修改 DRAFT 状态的测验
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   body body service.QuizReq true "测验配置"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 409 {object} util.Response "非草稿状态不可编辑"
// @Router /api/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req service.QuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(ctx.Param("id"), req)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.QuizService.DeleteQuiz(ctx.Param("id")); err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetQuiz godoc
// @Summary 测验详情
// @Description 教师视角：含题目与答案
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, questions, err := c.QuizService.GetQuiz(ctx.Param("id"))
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"quiz": quiz, "questions": questions})
}

// ListQuizzes godoc
// @Summary 测验列表
// @Description 教师视角：某开课下的全部测验，含题数与提交数
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   offeringId path int true "开课ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/offerings/{offeringId}/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	offeringID, err := strconv.ParseUint(ctx.Param("offeringId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid offering id")
		return
	}
	page, limit := pagination(ctx)

	rows, total, err := c.QuizService.ListQuizzes(uint(offeringID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: rows, Total: total, Page: page, Limit: limit})
}

// ListPublishedQuizzes godoc
// @Summary 学生可见的测验列表
// @Description 某开课下全部已发布的测验
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   offeringId path int true "开课ID"
// @Success 200 {object} util.Response{data=[]model.Quiz} "成功"
// @Router /api/offerings/{offeringId}/quizzes/published [get]
func (c *QuizController) ListPublishedQuizzes(ctx *gin.Context) {
	offeringID, err := strconv.ParseUint(ctx.Param("offeringId"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid offering id")
		return
	}

	quizzes, err := c.QuizService.ListPublishedForStudent(uint(offeringID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// AddQuestion godoc
// @Summary 添加题目
// @Description 题目追加到试卷末尾，测验总分同步重算
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   body body service.QuestionReq true "题目内容"
// @Success 201 {object} util.Response{data=model.Question} "创建成功"
// @Failure 409 {object} util.Response "非草稿状态不可编辑"
// @Router /api/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.AddQuestion(ctx.Param("id"), req)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Description 整体替换题干与选项，保持原有顺序，总分同步重算
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   questionId path string true "题目ID"
// @Param   body body service.QuestionReq true "题目内容"
// @Success 200 {object} util.Response{data=model.Question} "成功"
// @Router /api/quizzes/{id}/questions/{questionId} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.QuizService.UpdateQuestion(ctx.Param("id"), ctx.Param("questionId"), req)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Description 删除后剩余题目顺序重排，总分同步重算
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   questionId path string true "题目ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/quizzes/{id}/questions/{questionId} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	if err := c.QuizService.DeleteQuestion(ctx.Param("id"), ctx.Param("questionId")); err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// PublishQuiz godoc
// @Summary 发布测验
// @Description DRAFT -> PUBLISHED，至少要有一道题；发布后通知选课学生
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Router /api/quizzes/{id}/publish [post]
func (c *QuizController) PublishQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.Publish(ctx.Param("id"))
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// CloseQuiz godoc
// @Summary 关闭测验
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Router /api/quizzes/{id}/close [post]
func (c *QuizController) CloseQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.Close(ctx.Param("id"))
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// ReopenQuiz godoc
// @Summary 重新开放测验
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Router /api/quizzes/{id}/reopen [post]
func (c *QuizController) ReopenQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.Reopen(ctx.Param("id"))
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

type GenerateQuestionsRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Count      int    `json:"count" binding:"required,min=1,max=20"`
	Type       string `json:"type" binding:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE SHORT_ANSWER"`
	Difficulty string `json:"difficulty"`
}

// GenerateQuestions godoc
// @Summary AI 生成题目
// @Description 调用大模型按主题生成题目草稿，校验通过的追加到试卷
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "测验ID"
// @Param   body body GenerateQuestionsRequest true "生成参数"
// @Success 200 {object} util.Response{data=[]model.Question} "成功"
// @Router /api/quizzes/{id}/questions/generate [post]
func (c *QuizController) GenerateQuestions(ctx *gin.Context) {
	var req GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.QuizService.GenerateQuestions(ctx.Param("id"), req.Topic, req.Count, model.QuestionType(req.Type), req.Difficulty)
	if err != nil {
		quizError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// pagination 解析分页参数，页码从 1 开始
func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
