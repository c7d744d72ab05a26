package models

// Identity is the resolved session principal. Exactly one of
// LearnerIdentity, EducatorIdentity or AdminIdentity.
type Identity interface {
	identity()
	AccountID() string
	AccountEmail() string
	Role() Role
}

// LearnerIdentity is a signed-in learner
type LearnerIdentity struct {
	User *User
}

// EducatorIdentity is a signed-in educator
type EducatorIdentity struct {
	Educator *Educator
}

// AdminIdentity is a signed-in admin
type AdminIdentity struct {
	Admin *Admin
}

func (LearnerIdentity) identity()  {}
func (EducatorIdentity) identity() {}
func (AdminIdentity) identity()    {}

func (i LearnerIdentity) AccountID() string     { return i.User.ID }
func (i LearnerIdentity) AccountEmail() string  { return i.User.Email }
func (LearnerIdentity) Role() Role              { return RoleLearner }
func (i EducatorIdentity) AccountID() string    { return i.Educator.ID }
func (i EducatorIdentity) AccountEmail() string { return i.Educator.Email }
func (EducatorIdentity) Role() Role             { return RoleEducator }
func (i AdminIdentity) AccountID() string       { return i.Admin.ID }
func (i AdminIdentity) AccountEmail() string    { return i.Admin.Email }
func (AdminIdentity) Role() Role                { return RoleAdmin }
