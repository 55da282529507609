package web

import (
	"errors"

	"github.com/ecodeclub/aimarket/internal/interview/internal/errs"
	"github.com/ecodeclub/aimarket/internal/interview/internal/service"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	notFoundResult = ginx.Result{
		Code: errs.InterviewNotFound.Code,
		Msg:  errs.InterviewNotFound.Msg,
	}
	permissionResult = ginx.Result{
		Code: errs.InsufficientPermission.Code,
		Msg:  errs.InsufficientPermission.Msg,
	}
	duplicateResult = ginx.Result{
		Code: errs.DuplicateInterview.Code,
		Msg:  errs.DuplicateInterview.Msg,
	}
)

// errorResult 统一把服务层错误映射成响应码
func errorResult(err error) (ginx.Result, error) {
	var transitionErr *service.StatusTransitionError
	switch {
	case errors.Is(err, service.ErrInterviewNotFound),
		errors.Is(err, service.ErrTalentNotFound),
		errors.Is(err, service.ErrJobNotFound):
		return notFoundResult, err
	case errors.Is(err, service.ErrPermissionDenied):
		return permissionResult, err
	case errors.Is(err, service.ErrDuplicateInterview):
		return duplicateResult, err
	case errors.Is(err, service.ErrInvalidInput):
		return ginx.Result{
			Code: errs.InvalidInput.Code,
			Msg:  err.Error(),
		}, err
	case errors.As(err, &transitionErr):
		return ginx.Result{
			Code: errs.InvalidStatusTransition.Code,
			Msg:  transitionErr.Error(),
		}, err
	default:
		return systemErrorResult, err
	}
}
