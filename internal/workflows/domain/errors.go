package domain

import "bookinghub_backend/platform/apperr"

var (
	errExactlyOneOwner    = apperr.Validation("workflow must be owned by exactly one of user or team")
	errUnsupportedTrigger = apperr.Validation("unsupported workflow trigger")
	errOffsetRequired     = apperr.Validation("time offset and unit are required for before/after event triggers")
	errOffsetNotAllowed   = apperr.Validation("time offset is only allowed for before/after event triggers")
)
