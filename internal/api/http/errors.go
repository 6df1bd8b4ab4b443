package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/recordstore"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// toDomainError also covers record store failures and fiber's own errors,
// such as unmatched routes.
func toDomainError(err error) *apperrors.DomainError {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if _, ok := recordstore.AsAPIError(err); ok || recordstore.IsTransport(err) {
		return recordStoreError(err)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code := "HTTP_ERROR"
		if fiberErr.Code == fiber.StatusNotFound {
			code = "NOT_FOUND"
		}
		return apperrors.NewDomainError(code, fiberErr.Message, fiberErr.Code, nil)
	}
	return apperrors.ToDomainError(err)
}

// recordStoreError reports a record store failure as a bad gateway. Rejections
// carry the upstream status; transport failures do not.
func recordStoreError(err error) *apperrors.DomainError {
	if apiErr, ok := recordstore.AsAPIError(err); ok {
		details := map[string]any{"upstream_status": apiErr.Status}
		if apiErr.Type != "" {
			details["upstream_type"] = apiErr.Type
		}
		domainErr := apperrors.NewDomainError("RECORD_STORE_ERROR", "record store rejected the request", fiber.StatusBadGateway, details)
		domainErr.Err = err
		return domainErr
	}
	domainErr := apperrors.NewDomainError("RECORD_STORE_UNAVAILABLE", "record store unavailable", fiber.StatusBadGateway, nil)
	domainErr.Err = err
	return domainErr
}
