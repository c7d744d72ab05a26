package repotest

import (
	"context"
	"sort"
	"strings"
	"time"

	"learnhub/internal/models"
	"learnhub/internal/repositories"
)

// ===============================
// USERS
// ===============================

type userRepo struct{ s *Store }

func (r *userRepo) Create(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("User.Create"); err != nil {
		return err
	}
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return repositories.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = r.s.nextID("user")
	}
	u.CreatedAt = r.s.now()
	u.UpdatedAt = u.CreatedAt
	if u.Wishlist == nil {
		u.Wishlist = []string{}
	}
	if u.PurchaseCourse == nil {
		u.PurchaseCourse = []models.PurchaseRecord{}
	}
	r.s.users[u.ID] = cloneUser(u)
	return nil
}

func (r *userRepo) find(match func(*models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *userRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *userRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (r *userRepo) LinkGoogleID(_ context.Context, userID, googleID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.GoogleID = &googleID
	return nil
}

func (r *userRepo) AddPurchase(_ context.Context, userID, courseID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("User.AddPurchase"); err != nil {
		return err
	}
	u, ok := r.s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	for _, p := range u.PurchaseCourse {
		if p.CourseID == courseID {
			return repositories.ErrDuplicate
		}
	}
	u.PurchaseCourse = append(u.PurchaseCourse, models.PurchaseRecord{CourseID: courseID, PurchaseDate: at})
	return nil
}

func (r *userRepo) ToggleWishlist(_ context.Context, userID, courseID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return false, repositories.ErrNotFound
	}
	for i, id := range u.Wishlist {
		if id == courseID {
			u.Wishlist = append(u.Wishlist[:i], u.Wishlist[i+1:]...)
			return false, nil
		}
	}
	u.Wishlist = append(u.Wishlist, courseID)
	return true, nil
}

func (r *userRepo) RemoveFromWishlist(_ context.Context, userID, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return nil
	}
	kept := u.Wishlist[:0]
	for _, id := range u.Wishlist {
		if id != courseID {
			kept = append(kept, id)
		}
	}
	u.Wishlist = kept
	return nil
}

func (r *userRepo) SetRestriction(_ context.Context, userID string, restriction int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Restriction = restriction
	return nil
}

// ===============================
// EDUCATORS AND ADMINS
// ===============================

type educatorRepo struct{ s *Store }

func (r *educatorRepo) Create(_ context.Context, e *models.Educator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.educators {
		if strings.EqualFold(existing.Email, e.Email) {
			return repositories.ErrDuplicate
		}
	}
	if e.ID == "" {
		e.ID = r.s.nextID("educator")
	}
	e.CreatedAt = r.s.now()
	e.UpdatedAt = e.CreatedAt
	e.Courses = []string{}
	cp := *e
	r.s.educators[e.ID] = &cp
	return nil
}

func (r *educatorRepo) GetByID(_ context.Context, id string) (*models.Educator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.educators[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.s.educatorView(e), nil
}

func (r *educatorRepo) GetByEmail(_ context.Context, email string) (*models.Educator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.educators {
		if strings.EqualFold(e.Email, email) {
			return r.s.educatorView(e), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *educatorRepo) SetRestriction(_ context.Context, id string, restriction int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.educators[id]
	if !ok {
		return repositories.ErrNotFound
	}
	e.Restriction = restriction
	return nil
}

type adminRepo struct{ s *Store }

func (r *adminRepo) Upsert(_ context.Context, a *models.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			existing.Name = a.Name
			existing.PasswordHash = a.PasswordHash
			a.ID = existing.ID
			a.CreatedAt = existing.CreatedAt
			return nil
		}
	}
	if a.ID == "" {
		a.ID = r.s.nextID("admin")
	}
	a.CreatedAt = r.s.now()
	cp := *a
	r.s.admins[a.ID] = &cp
	return nil
}

func (r *adminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.admins {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// ===============================
// COURSES
// ===============================

type courseRepo struct{ s *Store }

func (r *courseRepo) Create(_ context.Context, c *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Course.Create"); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = r.s.nextID("course")
	}
	if c.Status == "" {
		c.Status = models.CourseStatusPending
	}
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	c.Chapters = []string{}
	cp := *c
	r.s.courses[c.ID] = &cp
	return nil
}

func (r *courseRepo) GetByID(_ context.Context, id string) (*models.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Course.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.s.courseView(c), nil
}

func (r *courseRepo) Update(_ context.Context, c *models.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Course.Update"); err != nil {
		return err
	}
	stored, ok := r.s.courses[c.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Title = c.Title
	stored.Description = c.Description
	stored.Price = c.Price
	stored.Category = c.Category
	stored.Level = c.Level
	stored.Language = c.Language
	stored.ImageURL = c.ImageURL
	stored.ImagePublicID = c.ImagePublicID
	stored.UpdatedAt = r.s.now()
	c.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *courseRepo) UpdateStatus(_ context.Context, id string, status models.CourseStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Status = status
	return nil
}

func (r *courseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Course.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.courses, id)
	return nil
}

func (r *courseRepo) list(match func(*models.Course) bool) []*models.Course {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Course{}
	for _, c := range r.s.courses {
		if match(c) {
			out = append(out, r.s.courseView(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *courseRepo) ListByStatus(_ context.Context, status models.CourseStatus) ([]*models.Course, error) {
	return r.list(func(c *models.Course) bool { return c.Status == status }), nil
}

func (r *courseRepo) ListByEducator(_ context.Context, educatorID string) ([]*models.Course, error) {
	return r.list(func(c *models.Course) bool { return c.EducatorID == educatorID }), nil
}

func (r *courseRepo) Reconcile(_ context.Context, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Course.Reconcile"); err != nil {
		return err
	}
	c, ok := r.s.courses[courseID]
	if !ok {
		return repositories.ErrNotFound
	}
	c.TotalSections, c.TotalLectures, c.Duration = 0, 0, 0
	for _, ch := range r.s.chapters {
		if ch.CourseID == courseID {
			c.TotalSections++
			c.TotalLectures += len(ch.Videos)
			c.Duration += ch.Duration
		}
	}
	return nil
}

func (r *courseRepo) IncrementEnrollment(_ context.Context, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.courses[courseID]
	if !ok {
		return repositories.ErrNotFound
	}
	c.TotalEnrollment++
	return nil
}

// ===============================
// CHAPTERS
// ===============================

type chapterRepo struct{ s *Store }

func (r *chapterRepo) CreateMany(_ context.Context, chapters []*models.Chapter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Chapter.CreateMany"); err != nil {
		return err
	}
	if len(chapters) == 0 {
		return nil
	}
	next := 0
	for _, ch := range r.s.chapters {
		if ch.CourseID == chapters[0].CourseID && ch.Position >= next {
			next = ch.Position + 1
		}
	}
	for i, ch := range chapters {
		if ch.ID == "" {
			ch.ID = r.s.nextID("chapter")
		}
		if ch.Videos == nil {
			ch.Videos = models.VideoList{}
		}
		ch.Position = next + i
		ch.CreatedAt = r.s.now()
		ch.UpdatedAt = ch.CreatedAt
		r.s.chapters[ch.ID] = cloneChapter(ch)
	}
	return nil
}

func (r *chapterRepo) GetByID(_ context.Context, courseID, chapterID string) (*models.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ch, ok := r.s.chapters[chapterID]
	if !ok || ch.CourseID != courseID {
		return nil, repositories.ErrNotFound
	}
	return cloneChapter(ch), nil
}

func (r *chapterRepo) GetByIDOnly(_ context.Context, chapterID string) (*models.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ch, ok := r.s.chapters[chapterID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneChapter(ch), nil
}

func (r *chapterRepo) ListByCourse(_ context.Context, courseID string) ([]*models.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Chapter.ListByCourse"); err != nil {
		return nil, err
	}
	return r.s.chaptersOf(courseID), nil
}

func (r *chapterRepo) FindByIDs(_ context.Context, courseID string, ids []string) ([]*models.Chapter, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := []*models.Chapter{}
	for _, ch := range r.s.chaptersOf(courseID) {
		if wanted[ch.ID] {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (r *chapterRepo) Update(_ context.Context, ch *models.Chapter) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Chapter.Update"); err != nil {
		return err
	}
	stored, ok := r.s.chapters[ch.ID]
	if !ok || stored.CourseID != ch.CourseID {
		return repositories.ErrNotFound
	}
	stored.Title = ch.Title
	stored.Description = ch.Description
	stored.Duration = ch.Duration
	stored.Videos = append(models.VideoList{}, ch.Videos...)
	stored.UpdatedAt = r.s.now()
	ch.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *chapterRepo) DeleteByIDs(_ context.Context, courseID string, ids []string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Chapter.DeleteByIDs"); err != nil {
		return 0, err
	}
	n := 0
	for _, id := range ids {
		if ch, ok := r.s.chapters[id]; ok && ch.CourseID == courseID {
			delete(r.s.chapters, id)
			n++
		}
	}
	return n, nil
}

func (r *chapterRepo) DeleteByCourse(_ context.Context, courseID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Chapter.DeleteByCourse"); err != nil {
		return 0, err
	}
	n := 0
	for id, ch := range r.s.chapters {
		if ch.CourseID == courseID {
			delete(r.s.chapters, id)
			n++
		}
	}
	return n, nil
}

// ===============================
// COMMENTS AND REVIEWS
// ===============================

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(_ context.Context, c *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c.ID == "" {
		c.ID = r.s.nextID("comment")
	}
	c.CreatedAt = r.s.now()
	cp := *c
	r.s.comments[c.ID] = &cp
	return nil
}

func (r *commentRepo) GetByID(_ context.Context, id string) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *commentRepo) ListByCourse(_ context.Context, courseID string) ([]*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Comment{}
	for _, c := range r.s.comments {
		if c.CourseID == courseID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *commentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.comments, id)
	return nil
}

type reviewRepo struct{ s *Store }

func (r *reviewRepo) Create(_ context.Context, rv *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.reviews {
		if existing.CourseID == rv.CourseID && existing.UserID == rv.UserID {
			return repositories.ErrDuplicate
		}
	}
	if rv.ID == "" {
		rv.ID = r.s.nextID("review")
	}
	rv.CreatedAt = r.s.now()
	cp := *rv
	r.s.reviews[rv.ID] = &cp
	return nil
}

func (r *reviewRepo) ListByCourse(_ context.Context, courseID string) ([]*models.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Review{}
	for _, rv := range r.s.reviews {
		if rv.CourseID == courseID {
			cp := *rv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ===============================
// REPORTS AND NOTIFICATIONS
// ===============================

type reportRepo struct{ s *Store }

func (r *reportRepo) Create(_ context.Context, rp *models.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Report.Create"); err != nil {
		return err
	}
	if rp.ID == "" {
		rp.ID = r.s.nextID("report")
	}
	rp.CreatedAt = r.s.now()
	cp := *rp
	r.s.reports[rp.ID] = &cp
	return nil
}

func (r *reportRepo) detail(rp *models.Report) *models.ReportDetail {
	d := &models.ReportDetail{Report: *rp}
	if rp.CommentID != nil {
		if c, ok := r.s.comments[*rp.CommentID]; ok {
			d.CommentText = c.Text
		}
	}
	if rp.ChapterID != nil {
		if ch, ok := r.s.chapters[*rp.ChapterID]; ok {
			d.ChapterTitle = ch.Title
		}
	}
	if rp.CourseID != nil {
		if c, ok := r.s.courses[*rp.CourseID]; ok {
			d.CourseTitle = c.Title
		}
	}
	return d
}

func (r *reportRepo) GetDetail(_ context.Context, id string) (*models.ReportDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Report.GetDetail"); err != nil {
		return nil, err
	}
	rp, ok := r.s.reports[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.detail(rp), nil
}

func (r *reportRepo) List(_ context.Context) ([]*models.ReportDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.ReportDetail{}
	for _, rp := range r.s.reports {
		out = append(out, r.detail(rp))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *reportRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Report.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.reports[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.reports, id)
	return nil
}

type notificationRepo struct{ s *Store }

func (r *notificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("Notification.Create"); err != nil {
		return err
	}
	if n.ID == "" {
		n.ID = r.s.nextID("notification")
	}
	n.CreatedAt = r.s.now()
	cp := *n
	r.s.notifications[n.ID] = &cp
	return nil
}

func (r *notificationRepo) ListByUser(_ context.Context, userID string) ([]*models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []*models.Notification{}
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *notificationRepo) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok || n.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

var (
	_ repositories.UserRepository         = (*userRepo)(nil)
	_ repositories.EducatorRepository     = (*educatorRepo)(nil)
	_ repositories.AdminRepository        = (*adminRepo)(nil)
	_ repositories.CourseRepository       = (*courseRepo)(nil)
	_ repositories.ChapterRepository      = (*chapterRepo)(nil)
	_ repositories.CommentRepository      = (*commentRepo)(nil)
	_ repositories.ReviewRepository       = (*reviewRepo)(nil)
	_ repositories.ReportRepository       = (*reportRepo)(nil)
	_ repositories.NotificationRepository = (*notificationRepo)(nil)
	_ repositories.Transactor             = (*Store)(nil)
)
