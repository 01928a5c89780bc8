package handler

import (
	"errors"
	"testing"

	"auditsystem/internal/infrastructure/ai"
	"auditsystem/internal/ledger"
	"auditsystem/internal/repository"
	"auditsystem/internal/service"
	"auditsystem/pkg/response"

	"github.com/stretchr/testify/assert"
)

func TestBusinessCode_KnownErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{repository.ErrAuditNotFound, response.CodeAuditNotFound},
		{repository.ErrFindingNotFound, response.CodeFindingNotFound},
		{service.ErrAuditNotLoaded, response.CodeAuditNotLoaded},
		{service.ErrDuplicateRequest, response.CodeDuplicateRequest},
		{&ledger.ValidationError{Index: 3, Field: "date"}, response.CodeInvalidLedger},
		{&ledger.MalformedEntryError{Index: 1, Field: "debit", Value: "abc"}, response.CodeInvalidLedger},
		{ai.ErrUnavailable, response.CodeAIUnavailable},
		{ai.ErrEmptyCompletion, response.CodeAIUnavailable},
		{service.ErrUnknownReportType, response.CodeParamError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.code, businessCode(tc.err), "错误 %v 映射不正确", tc.err)
	}
}

func TestBusinessCode_WrappedError(t *testing.T) {
	wrapped := errors.Join(errors.New("外层"), repository.ErrAuditNotFound)
	assert.Equal(t, response.CodeAuditNotFound, businessCode(wrapped))
}

func TestBusinessCode_UnknownError(t *testing.T) {
	assert.Equal(t, 0, businessCode(errors.New("别的错误")))
}
