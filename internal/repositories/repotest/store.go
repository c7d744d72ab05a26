// Package repotest provides an in-memory implementation of every repository
// interface for service and handler tests. Transactions snapshot the whole
// store and restore it when the callback fails, and any operation can be
// made to fail with FailOn.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"learnhub/internal/models"
	"learnhub/internal/repositories"
)

// Store is the shared in-memory state behind the fake repositories
type Store struct {
	mu sync.Mutex

	users         map[string]*models.User
	educators     map[string]*models.Educator
	admins        map[string]*models.Admin
	courses       map[string]*models.Course
	chapters      map[string]*models.Chapter
	comments      map[string]*models.Comment
	reviews       map[string]*models.Review
	reports       map[string]*models.Report
	notifications map[string]*models.Notification

	failures map[string]error
	seq      int
	base     time.Time

	Commits   int
	Rollbacks int
}

type txKey struct{}

// New creates an empty store
func New() *Store {
	return &Store{
		users:         map[string]*models.User{},
		educators:     map[string]*models.Educator{},
		admins:        map[string]*models.Admin{},
		courses:       map[string]*models.Course{},
		chapters:      map[string]*models.Chapter{},
		comments:      map[string]*models.Comment{},
		reviews:       map[string]*models.Review{},
		reports:       map[string]*models.Report{},
		notifications: map[string]*models.Notification{},
		failures:      map[string]error{},
		base:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Collection wires fakes for every repository onto this store
func (s *Store) Collection() *repositories.Collection {
	return &repositories.Collection{
		User:         &userRepo{s},
		Educator:     &educatorRepo{s},
		Admin:        &adminRepo{s},
		Course:       &courseRepo{s},
		Chapter:      &chapterRepo{s},
		Comment:      &commentRepo{s},
		Review:       &reviewRepo{s},
		Report:       &reportRepo{s},
		Notification: &notificationRepo{s},
		Tx:           s,
	}
}

// FailOn makes the named operation, e.g. "Course.Reconcile", return err
// until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// WithTransaction implements repositories.Transactor
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

// ===============================
// INSPECTION HELPERS
// ===============================

// Course returns a copy of the stored course with derived chapter ids
func (s *Store) Course(id string) *models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.courses[id]
	if !ok {
		return nil
	}
	return s.courseView(c)
}

// Chapters returns copies of a course's chapters in order
func (s *Store) Chapters(courseID string) []*models.Chapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chaptersOf(courseID)
}

// Report returns a copy of the stored report
func (s *Store) Report(id string) *models.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil
	}
	cp := *r
	return &cp
}

// Notifications returns copies of every stored notification, oldest first
func (s *Store) Notifications() []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// ===============================
// INTERNALS (caller holds s.mu)
// ===============================

func (s *Store) fail(op string) error {
	return s.failures[op]
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%04d", prefix, s.seq)
}

// now advances a fake clock so insertion order is observable in timestamps
func (s *Store) now() time.Time {
	s.seq++
	return s.base.Add(time.Duration(s.seq) * time.Millisecond)
}

func (s *Store) chaptersOf(courseID string) []*models.Chapter {
	out := []*models.Chapter{}
	for _, ch := range s.chapters {
		if ch.CourseID == courseID {
			out = append(out, cloneChapter(ch))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (s *Store) courseView(c *models.Course) *models.Course {
	cp := *c
	cp.Chapters = []string{}
	for _, ch := range s.chaptersOf(c.ID) {
		cp.Chapters = append(cp.Chapters, ch.ID)
	}
	return &cp
}

func (s *Store) educatorView(e *models.Educator) *models.Educator {
	cp := *e
	cp.TeachingFocus = append([]string{}, e.TeachingFocus...)
	owned := []*models.Course{}
	for _, c := range s.courses {
		if c.EducatorID == e.ID {
			owned = append(owned, c)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.Before(owned[j].CreatedAt) })
	cp.Courses = make([]string, 0, len(owned))
	for _, c := range owned {
		cp.Courses = append(cp.Courses, c.ID)
	}
	return &cp
}

type snapshot struct {
	users         map[string]*models.User
	educators     map[string]*models.Educator
	admins        map[string]*models.Admin
	courses       map[string]*models.Course
	chapters      map[string]*models.Chapter
	comments      map[string]*models.Comment
	reviews       map[string]*models.Review
	reports       map[string]*models.Report
	notifications map[string]*models.Notification
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		users:         make(map[string]*models.User, len(s.users)),
		educators:     make(map[string]*models.Educator, len(s.educators)),
		admins:        make(map[string]*models.Admin, len(s.admins)),
		courses:       make(map[string]*models.Course, len(s.courses)),
		chapters:      make(map[string]*models.Chapter, len(s.chapters)),
		comments:      make(map[string]*models.Comment, len(s.comments)),
		reviews:       make(map[string]*models.Review, len(s.reviews)),
		reports:       make(map[string]*models.Report, len(s.reports)),
		notifications: make(map[string]*models.Notification, len(s.notifications)),
	}
	for k, v := range s.users {
		snap.users[k] = cloneUser(v)
	}
	for k, v := range s.educators {
		cp := *v
		snap.educators[k] = &cp
	}
	for k, v := range s.admins {
		cp := *v
		snap.admins[k] = &cp
	}
	for k, v := range s.courses {
		cp := *v
		snap.courses[k] = &cp
	}
	for k, v := range s.chapters {
		snap.chapters[k] = cloneChapter(v)
	}
	for k, v := range s.comments {
		cp := *v
		snap.comments[k] = &cp
	}
	for k, v := range s.reviews {
		cp := *v
		snap.reviews[k] = &cp
	}
	for k, v := range s.reports {
		cp := *v
		snap.reports[k] = &cp
	}
	for k, v := range s.notifications {
		cp := *v
		snap.notifications[k] = &cp
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.educators = snap.educators
	s.admins = snap.admins
	s.courses = snap.courses
	s.chapters = snap.chapters
	s.comments = snap.comments
	s.reviews = snap.reviews
	s.reports = snap.reports
	s.notifications = snap.notifications
}

func cloneUser(u *models.User) *models.User {
	cp := *u
	cp.Wishlist = append([]string{}, u.Wishlist...)
	cp.PurchaseCourse = append([]models.PurchaseRecord{}, u.PurchaseCourse...)
	cp.Category = append([]string{}, u.Category...)
	return &cp
}

func cloneChapter(ch *models.Chapter) *models.Chapter {
	cp := *ch
	cp.Videos = append(models.VideoList{}, ch.Videos...)
	return &cp
}
