package util

import "errors"

var (
	ErrUserNotFound        = errors.New("用户不存在")
	ErrEmailRegistered     = errors.New("该邮箱已被注册")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrQuizNotPublished    = errors.New("quiz not published or not accessible")
	ErrQuizNotYetOpen      = errors.New("quiz not yet open")
	ErrQuizWindowClosed    = errors.New("quiz window has closed")
	ErrNotEnrolled         = errors.New("student not enrolled in this offering")
	ErrAttemptCompleted    = errors.New("attempt already submitted")
	ErrAttemptInProgress   = errors.New("attempt not yet submitted")
	ErrAttemptExpired      = errors.New("attempt time limit exceeded")
	ErrAttemptNotOwned     = errors.New("attempt does not belong to caller")
	ErrResultsNotAvailable = errors.New("results not available for this quiz")
	ErrQuizNotEditable     = errors.New("quiz is not in draft status")
	ErrAlreadyEnrolled     = errors.New("student already enrolled")
)
