package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/dto"
	"github.com/Theternos/TaskFlow-sub001/internal/adapter/http/mapper"
	"github.com/Theternos/TaskFlow-sub001/internal/core/domain"
)

var ErrInvalidTaskPayload = errors.New("invalid task payload")

// BuildUpdateTaskInput checks field presence against the raw body so an
// explicitly-null or mistyped field is rejected rather than silently
// treated as absent.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	if hasJSONField(raw, "title") {
		if req.Title == nil || strings.TrimSpace(*req.Title) == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
	}
	if hasJSONField(raw, "description") && req.Description == nil && !isJSONNull(raw["description"]) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if hasJSONField(raw, "completionDetails") && req.CompletionDetails == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	return mapper.ToUpdateTaskInput(req), nil
}

func hasUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "title") ||
		hasJSONField(raw, "description") ||
		hasJSONField(raw, "referenceLink") ||
		hasJSONField(raw, "tags") ||
		hasJSONField(raw, "completionDetails")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
