package docs

// Endpoint annotations for swag. Regenerate docs.go with:
//
//go:generate swag init --generalInfo ../../cmd/server/main.go --dir ../..,. --output . --outputTypes go --parseInternal

// ===============================
// SYSTEM
// ===============================

// HealthCheck godoc
// @Summary Health check endpoint
// @Description Reports database and cache health
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse "API is healthy"
// @Failure 503 {object} HealthResponse "A dependency is unhealthy"
// @Router /health [get]
func _() {}

// ===============================
// AUTHENTICATION
// ===============================

// Register godoc
// @Summary Register a learner or educator
// @Description Creates the account and sets the session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body services.RegisterRequest true "Registration details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 409 {object} ErrorResponse "Email is already registered"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Router /api/auth/register [post]
func _() {}

// Login godoc
// @Summary Sign in
// @Description Authenticates against the account store selected by role and sets the session cookie
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Credentials"
// @Success 200 {object} AuthResponse
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Failure 403 {object} ErrorResponse "Account restricted"
// @Failure 429 {object} ErrorResponse "Too many attempts"
// @Router /api/auth/login [post]
func _() {}

// Logout godoc
// @Summary Sign out
// @Tags Authentication
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/auth/logout [post]
func _() {}

// Me godoc
// @Summary Current account
// @Security SessionAuth
// @Tags Authentication
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func _() {}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Tags Authentication
// @Success 307 "Redirect to Google"
// @Failure 503 {object} ErrorResponse "Google sign-in is not configured"
// @Router /api/auth/google/login [get]
func _() {}

// GoogleCallback godoc
// @Summary Complete Google sign-in
// @Tags Authentication
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 307 "Redirect to the front end"
// @Router /api/auth/google/callback [get]
func _() {}

// ===============================
// CATALOGUE
// ===============================

// ListCourses godoc
// @Summary Approved courses
// @Tags Courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/courses [get]
func _() {}

// GetCourse godoc
// @Summary Course detail
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /api/course/{courseId} [get]
func _() {}

// ListReviews godoc
// @Summary Course reviews
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/course/{courseId}/reviews [get]
func _() {}

// ListComments godoc
// @Summary Course comments
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/course/{courseId}/comments [get]
func _() {}

// GetChapter godoc
// @Summary Chapter with videos
// @Description Requires a purchase (learner) or authorship (educator)
// @Security SessionAuth
// @Tags Courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Param chapterId path string true "Chapter ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/course/{courseId}/chapter/{chapterId} [get]
func _() {}

// ===============================
// EDUCATOR
// ===============================

// CreateCourse godoc
// @Summary Create a course
// @Security SessionAuth
// @Tags Educator
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param price formData number false "Price"
// @Param category formData string true "Category"
// @Param level formData string true "Level"
// @Param language formData string true "Language"
// @Param image formData file false "Thumbnail"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/educator/addcourse [post]
func _() {}

// EditCourse godoc
// @Summary Edit a course
// @Security SessionAuth
// @Tags Educator
// @Accept multipart/form-data
// @Produce json
// @Param courseId path string true "Course ID"
// @Param image formData file false "Replacement thumbnail"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} ErrorResponse
// @Router /api/educator/editcourse/{courseId} [put]
func _() {}

// ListMyCourses godoc
// @Summary The educator's courses
// @Security SessionAuth
// @Tags Educator
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/educator/courses [get]
func _() {}

// AddChapters godoc
// @Summary Add chapters with videos
// @Description Field "chapters" holds a JSON array; every video j of chapter i needs a file part chapter-{i}-video-{j}
// @Security SessionAuth
// @Tags Educator
// @Accept multipart/form-data
// @Produce json
// @Param courseId path string true "Course ID"
// @Param chapters formData string true "Chapters JSON"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse "Uploads were rolled back"
// @Router /api/educator/addchapter/{courseId} [post]
func _() {}

// EditChapter godoc
// @Summary Edit a chapter
// @Description Field "chapter" holds the chapter JSON; optional file parts video-{i} replace videos
// @Security SessionAuth
// @Tags Educator
// @Accept multipart/form-data
// @Produce json
// @Param courseId path string true "Course ID"
// @Param chapterId path string true "Chapter ID"
// @Param chapter formData string true "Chapter JSON"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/educator/editchapter/{courseId}/{chapterId} [put]
func _() {}

// DeleteChapters godoc
// @Summary Delete chapters
// @Security SessionAuth
// @Tags Educator
// @Accept json
// @Produce json
// @Param request body services.DeleteChaptersRequest true "Chapters to delete"
// @Success 200 {object} ChapterDeletionResponse
// @Failure 404 {object} ErrorResponse "No chapters found"
// @Router /api/educator/deletechapter [delete]
func _() {}

// DeleteCourse godoc
// @Summary Delete a course as its author
// @Security SessionAuth
// @Tags Educator
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} CourseDeletionResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/educator/deletecourse/{courseId} [delete]
func _() {}

// ===============================
// LEARNER
// ===============================

// PurchaseCourse godoc
// @Summary Purchase courses
// @Security SessionAuth
// @Tags Learner
// @Accept json
// @Produce json
// @Param request body services.PurchaseRequest true "Courses"
// @Success 200 {object} map[string]interface{}
// @Router /api/user/purchasecourse [post]
func _() {}

// ToggleWishlist godoc
// @Summary Add or remove a wishlist course
// @Security SessionAuth
// @Tags Learner
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/user/wishlist/{courseId} [post]
func _() {}

// CourseAccess godoc
// @Summary Course-access decision
// @Security SessionAuth
// @Tags Learner
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} CourseAccessResponse
// @Failure 403 {object} CourseAccessResponse "Access denied, with the error fields"
// @Router /api/user/courseaccess/{courseId} [get]
func _() {}

// CreateReview godoc
// @Summary Review a purchased course
// @Security SessionAuth
// @Tags Learner
// @Accept json
// @Produce json
// @Param request body services.ReviewRequest true "Review"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} ErrorResponse "Already reviewed"
// @Router /api/user/review [post]
func _() {}

// CreateComment godoc
// @Summary Comment on a course or chapter
// @Security SessionAuth
// @Tags Learner
// @Accept json
// @Produce json
// @Param request body services.CommentRequest true "Comment"
// @Success 201 {object} map[string]interface{}
// @Router /api/user/comment [post]
func _() {}

// CreateReport godoc
// @Summary Report a course, chapter or comment
// @Security SessionAuth
// @Tags Learner
// @Accept json
// @Produce json
// @Param request body services.ReportRequest true "Report"
// @Success 201 {object} map[string]interface{}
// @Router /api/user/report [post]
func _() {}

// ===============================
// NOTIFICATIONS
// ===============================

// ListNotifications godoc
// @Summary Unread notifications
// @Security SessionAuth
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/notifications [get]
func _() {}

// MarkNotificationRead godoc
// @Summary Mark a notification as read
// @Security SessionAuth
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} MessageResponse
// @Router /api/notifications/{id} [delete]
func _() {}

// NotificationStream godoc
// @Summary WebSocket stream of new notifications
// @Security SessionAuth
// @Tags Notifications
// @Success 101 "Switching protocols"
// @Router /api/notifications/ws [get]
func _() {}

// ===============================
// ADMIN
// ===============================

// ListReports godoc
// @Summary Open reports
// @Security SessionAuth
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse "Not authorized as admin"
// @Router /api/admin/reports [get]
func _() {}

// ReportAction godoc
// @Summary Warn the content owner or consume a report
// @Security SessionAuth
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body services.ReportActionRequest true "Action"
// @Success 200 {object} ReportActionResponse
// @Failure 401 {object} ErrorResponse "Not authorized as admin"
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/report/reportaction [patch]
func _() {}

// UpdateCourseStatus godoc
// @Summary Change a course's moderation status
// @Security SessionAuth
// @Tags Admin
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param request body services.StatusRequest true "Status"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/course/{courseId}/status [patch]
func _() {}

// SetUserRestriction godoc
// @Summary Restrict or restore a learner
// @Security SessionAuth
// @Tags Admin
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body services.RestrictionRequest true "Restriction"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/user/{userId}/restriction [patch]
func _() {}

// DeleteComment godoc
// @Summary Delete a comment
// @Security SessionAuth
// @Tags Admin
// @Produce json
// @Param commentId path string true "Comment ID"
// @Success 200 {object} MessageResponse
// @Router /api/admin/comment/{commentId} [delete]
func _() {}

// AdminDeleteCourse godoc
// @Summary Delete any course
// @Security SessionAuth
// @Tags Admin
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} CourseDeletionResponse
// @Router /api/admin/deletecourse/{courseId} [delete]
func _() {}
