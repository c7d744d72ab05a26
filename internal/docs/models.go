package docs

// Response shapes referenced by the endpoint annotations. Handlers build
// these bodies with response.Payload; the structs only describe them.

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success   bool        `json:"success" example:"false"`
	Message   string      `json:"message" example:"Course not purchased"`
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
}

// ErrorDetail classifies a failure
type ErrorDetail struct {
	Type    string       `json:"type" example:"FORBIDDEN"`
	Message string       `json:"message" example:"Course not purchased"`
	Code    string       `json:"code,omitempty" example:"FORBIDDEN"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError is one failed validation rule
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email must be a valid email address"`
	Code    string `json:"code" example:"email"`
}

// MessageResponse is a success body carrying only a message
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Msg     string `json:"msg" example:"Logged out"`
}

// AuthResponse is returned by register and login. The session token is
// set as an HttpOnly cookie.
type AuthResponse struct {
	Success bool        `json:"success" example:"true"`
	Msg     string      `json:"msg" example:"Login successful"`
	Role    string      `json:"role" example:"user"`
	User    interface{} `json:"user"`
}

// MeResponse describes the signed-in account
type MeResponse struct {
	Success bool        `json:"success" example:"true"`
	Role    string      `json:"role" example:"educator"`
	Account interface{} `json:"account"`
}

// CourseAccessResponse is the access decision. On 403 the error fields are
// returned alongside it.
type CourseAccessResponse struct {
	Success      bool `json:"success" example:"true"`
	CourseAccess bool `json:"courseAccess" example:"true"`
	CourseModify bool `json:"courseModify" example:"false"`
}

// CourseDeletionResponse reports the course deletion flow
type CourseDeletionResponse struct {
	Success          bool `json:"success" example:"true"`
	DeletedResources int  `json:"deletedResources" example:"4"`
	FailedResources  int  `json:"failedResources" example:"0"`
	DeletedChapters  int  `json:"deletedChapters" example:"3"`
}

// ChapterDeletionResponse reports the batch chapter delete
type ChapterDeletionResponse struct {
	Success           bool `json:"success" example:"true"`
	DeletedCount      int  `json:"deletedCount" example:"2"`
	VideosDeleted     int  `json:"videosDeleted" example:"5"`
	CloudinaryResults struct {
		Succeeded int `json:"succeeded" example:"5"`
		Failed    int `json:"failed" example:"0"`
	} `json:"cloudinaryResults"`
}

// ReportActionResponse is the admin report action result
type ReportActionResponse struct {
	Message string `json:"message" example:"Warning sent to the content owner"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Success     bool                   `json:"success" example:"true"`
	Status      string                 `json:"status" example:"healthy"`
	Version     string                 `json:"version" example:"1.0.0"`
	Environment string                 `json:"environment" example:"production"`
	Checks      map[string]interface{} `json:"checks"`
}
