package controller

import (
	"campus_lms_backend/internal/service"
	"campus_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	ResourceService *service.ResourceService
}

func NewResourceController(resourceService *service.ResourceService) *ResourceController {
	return &ResourceController{ResourceService: resourceService}
}

// Upload godoc
// @Summary 上传课程资源
// @Description 讲义、课件、视频等附件，视频自动探测时长
// @Tags 资源
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   title formData string true "资源标题"
// @Param   file formData file true "文件"
// @Success 201 {object} util.Response{data=model.Resource} "上传成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/courses/{id}/resources [post]
func (c *ResourceController) Upload(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	title := ctx.PostForm("title")
	if title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	res, err := c.ResourceService.Upload(ctx.Request.Context(), courseID, user.UserID, title, fh)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, res)
}

// Get godoc
// @Summary 资源详情
// @Tags 资源
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "资源ID"
// @Success 200 {object} util.Response{data=model.Resource} "成功"
// @Router /api/resources/{id} [get]
func (c *ResourceController) Get(ctx *gin.Context) {
	res, err := c.ResourceService.Get(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, res)
}

// ListByCourse godoc
// @Summary 课程资源列表
// @Tags 资源
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "课程ID"
// @Param   page query int false "页码"
// @Param   limit query int false "每页条数"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/courses/{id}/resources [get]
func (c *ResourceController) ListByCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	page, limit := pagination(ctx)

	resources, total, err := c.ResourceService.ListByCourse(courseID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: resources, Total: total, Page: page, Limit: limit})
}

// Delete godoc
// @Summary 删除资源
// @Description 同时清理存储中的文件
// @Tags 资源
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "资源ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/resources/{id} [delete]
func (c *ResourceController) Delete(ctx *gin.Context) {
	if err := c.ResourceService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, nil)
}
