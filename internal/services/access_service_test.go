package services

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"learnhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccess_EducatorOwnsCourse(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)

	decision, err := f.svc.Access.Check(f.ctx, f.educatorID(owner.ID), course.ID)

	require.NoError(t, err)
	assert.Equal(t, CourseAccess{CourseAccess: true, CourseModify: true}, decision)
}

func TestAccess_EducatorWithoutAuthorship(t *testing.T) {
	f := newFixture(t)
	owner := f.educator()
	other := f.educator()
	course := f.course(owner.ID, models.CourseStatusApproved)

	decision, err := f.svc.Access.Check(f.ctx, f.educatorID(other.ID), course.ID)

	assert.Equal(t, CourseAccess{}, decision)
	assert.Equal(t, http.StatusForbidden, statusOf(err))
	assert.Equal(t, ReasonUnauthorizedAccess, GetServiceError(err).Message)
}

func TestAccess_LearnerBeforeAndAfterPurchase(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	learner := f.learner()

	decision, err := f.svc.Access.Check(f.ctx, f.learnerID(learner.ID), course.ID)
	assert.False(t, decision.CourseAccess)
	assert.Equal(t, http.StatusForbidden, statusOf(err))
	assert.Equal(t, ReasonCourseNotPurchased, GetServiceError(err).Message)

	_, err = f.svc.Purchase.Purchase(f.ctx, learner, &PurchaseRequest{CourseIDs: []string{course.ID}})
	require.NoError(t, err)

	decision, err = f.svc.Access.Check(f.ctx, f.learnerID(learner.ID), course.ID)
	require.NoError(t, err)
	assert.Equal(t, CourseAccess{CourseAccess: true, CourseModify: false}, decision)
}

// Purchase records and the requested id are compared in canonical form, so
// a record stored with different case or padding still grants access.
func TestAccess_PurchaseComparisonIsNormalised(t *testing.T) {
	f := newFixture(t)
	identity := models.LearnerIdentity{User: &models.User{
		ID: "u1",
		PurchaseCourse: []models.PurchaseRecord{
			{CourseID: " COURSE-ABC ", PurchaseDate: time.Now()},
		},
	}}

	decision, err := f.svc.Access.Check(f.ctx, identity, "course-abc")

	require.NoError(t, err)
	assert.True(t, decision.CourseAccess)
}

func TestAccess_AdminAndMissingIdentityAreDenied(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)

	for name, identity := range map[string]models.Identity{
		"admin": f.admin(),
		"none":  nil,
	} {
		t.Run(name, func(t *testing.T) {
			decision, err := f.svc.Access.Check(f.ctx, identity, course.ID)
			assert.Equal(t, CourseAccess{}, decision)
			assert.Equal(t, http.StatusForbidden, statusOf(err))
			assert.Equal(t, ReasonUnauthorizedAccess, GetServiceError(err).Message)
		})
	}
}

func TestPurchase_RecordsEnrollmentAndClearsWishlist(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	learner := f.learner()

	wishlist, added, err := f.svc.Purchase.ToggleWishlist(f.ctx, learner, course.ID)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{course.ID}, wishlist)

	records, err := f.svc.Purchase.Purchase(f.ctx, learner, &PurchaseRequest{CourseIDs: []string{course.ID, course.ID}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, course.ID, records[0].CourseID)
	assert.False(t, records[0].PurchaseDate.IsZero())

	// buying again is a no-op
	_, err = f.svc.Purchase.Purchase(f.ctx, learner, &PurchaseRequest{CourseIDs: []string{course.ID}})
	require.NoError(t, err)

	assert.Equal(t, 1, f.store.Course(course.ID).TotalEnrollment)
	reloaded, err := f.repos.User.GetByID(f.ctx, learner.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Wishlist)
}

func TestPurchase_DeduplicatesCanonicalIDs(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	learner := f.learner()

	records, err := f.svc.Purchase.Purchase(f.ctx, learner, &PurchaseRequest{
		CourseIDs: []string{course.ID, " " + strings.ToUpper(course.ID) + " "},
	})

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, f.store.Course(course.ID).TotalEnrollment)
}

func TestPurchase_RejectsUnapprovedCourseAtomically(t *testing.T) {
	f := newFixture(t)
	educator := f.educator()
	approved := f.course(educator.ID, models.CourseStatusApproved)
	pending := f.course(educator.ID, models.CourseStatusPending)
	learner := f.learner()

	_, err := f.svc.Purchase.Purchase(f.ctx, learner, &PurchaseRequest{CourseIDs: []string{approved.ID, pending.ID}})

	assert.Equal(t, http.StatusBadRequest, statusOf(err))
	reloaded, err := f.repos.User.GetByID(f.ctx, learner.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.PurchaseCourse)
	assert.Zero(t, f.store.Course(approved.ID).TotalEnrollment)
}

func TestPurchase_UnknownCourse(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Purchase.Purchase(f.ctx, f.learner(), &PurchaseRequest{CourseIDs: []string{"missing"}})

	assert.Equal(t, http.StatusNotFound, statusOf(err))
}

func TestWishlist_ToggleRemoves(t *testing.T) {
	f := newFixture(t)
	course := f.course(f.educator().ID, models.CourseStatusApproved)
	learner := f.learner()

	_, _, err := f.svc.Purchase.ToggleWishlist(f.ctx, learner, course.ID)
	require.NoError(t, err)
	wishlist, added, err := f.svc.Purchase.ToggleWishlist(f.ctx, learner, course.ID)
	require.NoError(t, err)

	assert.False(t, added)
	assert.Empty(t, wishlist)
}
