package service

import (
	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"
	"campus_lms_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// 课程资源允许的文件类型
var allowedResourceTypes = []string{
	util.MimePDF,
	"application/zip",
	"application/msword",
	"application/vnd.openxmlformats-officedocument",
	"application/vnd.ms-powerpoint",
	"text/",
	util.MimeImage,
	util.MimeVideo,
}

type ResourceService struct {
	Repo     *repository.ResourceRepository
	Academic *repository.AcademicRepository
	Storage  *StorageService
}

func NewResourceService(repo *repository.ResourceRepository, academic *repository.AcademicRepository, storage *StorageService) *ResourceService {
	return &ResourceService{Repo: repo, Academic: academic, Storage: storage}
}

// Upload 上传课程资源。视频文件额外探测时长。
func (s *ResourceService) Upload(ctx context.Context, courseID, uploaderID uint, title string, fh *multipart.FileHeader) (*model.Resource, error) {
	if _, err := s.Academic.FindCourseByID(courseID); err != nil {
		return nil, errors.New("course not found")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, allowedResourceTypes)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, err
	}

	// 先落到临时文件，视频需要探测，对象存储走 PutFile
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload_%d_%s", time.Now().UnixNano(), filepath.Base(fh.Filename)))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return nil, err
	}
	if _, err := tmp.ReadFrom(src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, err
	}
	tmp.Close()
	defer os.Remove(tmpPath)

	durationSeconds := 0
	if util.IsVideo(mimeType) {
		if info, err := util.ProbeVideo(tmpPath); err == nil {
			durationSeconds = int(info.Duration)
		} else {
			logger.Log.Warn("视频探测失败", zap.String("file", fh.Filename), zap.Error(err))
		}
	}

	key := fmt.Sprintf("courses/%d/%s_%s", courseID, model.GenerateUUID(), filepath.Base(fh.Filename))
	url, err := s.Storage.PutFile(ctx, key, tmpPath, mimeType)
	if err != nil {
		return nil, err
	}

	res := &model.Resource{
		CourseID:        courseID,
		UploaderID:      uploaderID,
		Title:           title,
		FileName:        fh.Filename,
		URL:             url,
		ObjectKey:       key,
		MimeType:        mimeType,
		SizeBytes:       fh.Size,
		DurationSeconds: durationSeconds,
	}
	if err := s.Repo.Create(res); err != nil {
		// 入库失败时清理已上传对象
		_ = s.Storage.Remove(ctx, key)
		return nil, err
	}
	return res, nil
}

func (s *ResourceService) Get(id string) (*model.Resource, error) {
	return s.Repo.FindByID(id)
}

func (s *ResourceService) ListByCourse(courseID uint, page, limit int) ([]model.Resource, int64, error) {
	return s.Repo.ListByCourse(courseID, page, limit)
}

func (s *ResourceService) Delete(ctx context.Context, id string) error {
	res, err := s.Repo.FindByID(id)
	if err != nil {
		return errors.New("resource not found")
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if res.ObjectKey != "" {
		_ = s.Storage.Remove(ctx, res.ObjectKey)
	}
	return nil
}
