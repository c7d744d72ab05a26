package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"learnhub/internal/contextutils"
	"learnhub/internal/services"

	"go.uber.org/zap"
)

// ===============================
// RESPONSE CONFIGURATION
// ===============================

// Config holds configuration for the response system
type Config struct {
	PrettyJSON         bool `json:"pretty_json"`
	IncludeRequestID   bool `json:"include_request_id"`
	MaskInternalErrors bool `json:"mask_internal_errors"`
}

// DefaultConfig returns production-ready response configuration
func DefaultConfig() *Config {
	return &Config{
		PrettyJSON:         false,
		IncludeRequestID:   true,
		MaskInternalErrors: true,
	}
}

// ===============================
// RESPONSE TYPES
// ===============================

// Payload is a success body. Keys are merged next to "success": true.
type Payload map[string]interface{}

// ErrorResponse is the body written for every failed request
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Error     *ErrorDetail `json:"error"`
	RequestID string       `json:"request_id,omitempty"`
}

// ErrorDetail represents error information in API responses
type ErrorDetail struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Code    string                 `json:"code,omitempty"`
	Fields  []FieldError           `json:"fields,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// FieldError represents field-specific validation errors
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ===============================
// RESPONSE BUILDER
// ===============================

// Builder writes standardized JSON responses
type Builder struct {
	config *Config
	logger *zap.Logger
}

// NewBuilder creates a new response builder
func NewBuilder(config *Config, logger *zap.Logger) *Builder {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		config: config,
		logger: logger,
	}
}

// WriteJSON writes body as JSON with the given status
func (b *Builder) WriteJSON(w http.ResponseWriter, r *http.Request, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if statusCode >= http.StatusBadRequest {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	}
	w.WriteHeader(statusCode)

	encoder := json.NewEncoder(w)
	if b.config.PrettyJSON {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(body); err != nil {
		b.logger.Error("Failed to encode JSON response",
			zap.Error(err),
			zap.String("request_id", contextutils.GetRequestID(r.Context())),
		)
	}
}

// WriteSuccess writes payload with "success": true
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, statusCode int, payload Payload) {
	body := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	b.WriteJSON(w, r, statusCode, body)
}

// WriteOK writes a 200 success payload
func (b *Builder) WriteOK(w http.ResponseWriter, r *http.Request, payload Payload) {
	b.WriteSuccess(w, r, http.StatusOK, payload)
}

// WriteCreated writes a 201 success payload
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, payload Payload) {
	b.WriteSuccess(w, r, http.StatusCreated, payload)
}

// WriteError converts err into an error body and its status code
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := b.Error(r.Context(), err)
	b.WriteJSON(w, r, status, body)
}

// Error builds the error body for err and logs it by severity
func (b *Builder) Error(ctx context.Context, err error) (int, *ErrorResponse) {
	se := services.GetServiceError(err)
	status := se.GetStatusCode()

	detail := &ErrorDetail{
		Type:    se.Type,
		Message: se.Message,
		Code:    se.Code,
		Details: se.Details,
	}

	var valErr *services.ValidationError
	if errors.As(err, &valErr) {
		for _, f := range valErr.Fields {
			detail.Fields = append(detail.Fields, FieldError{Field: f.Field, Message: f.Message, Code: f.Code})
		}
		detail.Details = nil
	}

	if b.config.MaskInternalErrors && status >= http.StatusInternalServerError {
		detail.Message = "An internal error occurred"
		detail.Details = nil
	}

	b.logError(ctx, err, status, detail)

	body := &ErrorResponse{
		Success: false,
		Message: detail.Message,
		Error:   detail,
	}
	if b.config.IncludeRequestID {
		body.RequestID = contextutils.GetRequestID(ctx)
	}
	return status, body
}

func (b *Builder) logError(ctx context.Context, err error, status int, detail *ErrorDetail) {
	logger := contextutils.Logger(ctx, b.logger)
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("error_type", detail.Type),
		zap.String("error_code", detail.Code),
	}

	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("Internal error", append(fields, zap.Error(err))...)
	case status == http.StatusBadRequest || status == http.StatusConflict:
		logger.Warn("Request error", append(fields, zap.String("error_message", detail.Message))...)
	default:
		logger.Info("Request completed with error", append(fields, zap.String("error_message", detail.Message))...)
	}
}

// DecodeJSON decodes the request body into dst, rejecting unknown shapes
// with a validation error
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return services.NewValidationError("Request body is required", nil)
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		return services.NewValidationError("Invalid JSON body", err)
	}
	return nil
}
