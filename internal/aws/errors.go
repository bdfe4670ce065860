// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"errors"

	"github.com/aws/smithy-go"
)

// ErrorKind is the closed set of provider error kinds the commands react to.
// Anything not listed is KindUnrecognized and is treated as fatal by callers
// that re-raise.
type ErrorKind int

const (
	KindUnrecognized ErrorKind = iota
	KindAccessDenied
	KindValidation
	KindResourceNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindAccessDenied:
		return "AccessDenied"
	case KindValidation:
		return "Validation"
	case KindResourceNotFound:
		return "ResourceNotFound"
	default:
		return "Unrecognized"
	}
}

// errorCodes maps service error codes onto kinds. Services are not consistent
// about the "Exception" suffix, so both spellings are listed.
var errorCodes = map[string]ErrorKind{
	"AccessDenied":               KindAccessDenied,
	"AccessDeniedException":      KindAccessDenied,
	"UnauthorizedOperation":      KindAccessDenied,
	"ValidationException":        KindValidation,
	"InvalidParametersException": KindValidation,
	"ResourceNotFoundException":  KindResourceNotFound,
	"ResourceNotFound":           KindResourceNotFound,
}

// Classify returns the ErrorKind for err. A nil error, a non-API error, or an
// unknown code yields KindUnrecognized.
func Classify(err error) ErrorKind {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return KindUnrecognized
	}
	if kind, ok := errorCodes[apiErr.ErrorCode()]; ok {
		return kind
	}
	return KindUnrecognized
}

// IsKind reports whether err classifies as any of kinds.
func IsKind(err error, kinds ...ErrorKind) bool {
	got := Classify(err)
	if got == KindUnrecognized {
		return false
	}
	for _, k := range kinds {
		if k == got {
			return true
		}
	}
	return false
}

// ErrorMessage returns the provider's message for API errors and err.Error()
// otherwise.
func ErrorMessage(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return err.Error()
}
