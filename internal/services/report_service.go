package services

import (
	"context"
	"fmt"
	"strings"

	"learnhub/internal/models"
	"learnhub/internal/repositories"

	"go.uber.org/zap"
)

type reportService struct {
	repos         *repositories.Collection
	notifications NotificationService
	logger        *zap.Logger
}

// NewReportService creates the report and moderation service
func NewReportService(repos *repositories.Collection, notifications NotificationService, logger *zap.Logger) ReportService {
	return &reportService{repos: repos, notifications: notifications, logger: logger}
}

// CreateReport files a report and records whose content it targets:
// the comment author for comments, the course educator otherwise.
func (s *reportService) CreateReport(ctx context.Context, identity models.Identity, req *ReportRequest) (*models.Report, error) {
	if identity == nil {
		return nil, NewUnauthenticatedError("Not authenticated")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.CourseID == "" && req.ChapterID == "" && req.CommentID == "" {
		return nil, NewValidationError("A course, chapter or comment reference is required", nil)
	}

	report := &models.Report{
		Description: strings.TrimSpace(req.Description),
		CourseID:    models.StringPtr(req.CourseID),
		ChapterID:   models.StringPtr(req.ChapterID),
		CommentID:   models.StringPtr(req.CommentID),
		UserID:      identity.AccountID(),
	}

	target, err := s.resolveTarget(ctx, report)
	if err != nil {
		return nil, err
	}
	report.TargetUserID = models.StringPtr(target)

	if err := s.repos.Report.Create(ctx, report); err != nil {
		return nil, storeError(err, "Report")
	}

	s.logger.Info("Report filed",
		zap.String("report_id", report.ID),
		zap.String("reporter_id", report.UserID),
		zap.String("target_user_id", target),
	)
	return report, nil
}

func (s *reportService) resolveTarget(ctx context.Context, report *models.Report) (string, error) {
	if id := models.StringValue(report.CommentID); id != "" {
		comment, err := s.repos.Comment.GetByID(ctx, id)
		if err != nil {
			return "", storeError(err, "Comment")
		}
		if report.CourseID == nil {
			report.CourseID = models.StringPtr(comment.CourseID)
		}
		return comment.UserID, nil
	}

	courseID := models.StringValue(report.CourseID)
	if id := models.StringValue(report.ChapterID); id != "" {
		chapter, err := s.repos.Chapter.GetByIDOnly(ctx, id)
		if err != nil {
			return "", storeError(err, "Chapter")
		}
		courseID = chapter.CourseID
		report.CourseID = models.StringPtr(courseID)
	}

	course, err := s.repos.Course.GetByID(ctx, courseID)
	if err != nil {
		return "", storeError(err, "Course")
	}
	return course.EducatorID, nil
}

// ListReports returns open reports with their referenced titles
func (s *reportService) ListReports(ctx context.Context) ([]*models.ReportDetail, error) {
	reports, err := s.repos.Report.List(ctx)
	if err != nil {
		return nil, storeError(err, "Report")
	}
	return reports, nil
}

// ReportAction consumes a report. A warn keeps the report and only
// notifies the content owner; any other status deletes the report and
// creates the notification in one transaction.
func (s *reportService) ReportAction(ctx context.Context, req *ReportActionRequest) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	detail, err := s.repos.Report.GetDetail(ctx, req.ReportID)
	if err != nil {
		return "", storeError(err, "Report")
	}

	target := models.StringValue(detail.TargetUserID)
	if target == "" {
		return "", NewNotFoundError("Reported content owner not found")
	}

	warn := req.Status == ReportActionWarn
	notification := &models.Notification{
		UserID:    target,
		Message:   composeReportMessage(detail, warn),
		CourseID:  detail.CourseID,
		ChapterID: detail.ChapterID,
		CommentID: detail.CommentID,
	}

	if warn {
		if err := s.repos.Notification.Create(ctx, notification); err != nil {
			return "", NewInternalError(err.Error()).WithCause(err)
		}
		s.notifications.Publish(notification)
		s.logger.Info("Report warning sent",
			zap.String("report_id", detail.ID),
			zap.String("target_user_id", target),
		)
		return "Warning sent to the content owner", nil
	}

	err = s.repos.Tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repos.Report.Delete(ctx, detail.ID); err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		if err := s.repos.Notification.Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Report action rolled back",
			zap.String("report_id", detail.ID),
			zap.Error(err),
		)
		return "", NewInternalError(err.Error()).WithCause(err)
	}

	s.notifications.Publish(notification)
	s.logger.Info("Report resolved",
		zap.String("report_id", detail.ID),
		zap.String("target_user_id", target),
	)
	return "Report resolved and the content owner notified", nil
}

// composeReportMessage names the reported content, preferring the comment,
// then the chapter, then the course, and appends the report reason.
func composeReportMessage(detail *models.ReportDetail, warn bool) string {
	var subject string
	switch {
	case detail.CommentID != nil:
		subject = fmt.Sprintf("your comment %q", detail.CommentText)
	case detail.ChapterID != nil:
		subject = fmt.Sprintf("your chapter %q", detail.ChapterTitle)
	default:
		subject = fmt.Sprintf("your course %q", detail.CourseTitle)
	}

	var msg string
	if warn {
		msg = fmt.Sprintf("Warning: %s was reported and may be restricted.", subject)
	} else {
		msg = fmt.Sprintf("Action taken: %s was reported and has been moderated by an admin.", subject)
	}
	return msg + " Reason: " + detail.Description
}
