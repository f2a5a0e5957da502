package model

type User interface {
	// Username is the principal identity used for owner scoping.
	Username() string
	Subject() string
	Provider() string
	Roles() []string
}

type ReadOnlyUser struct {
	username string
	subject  string
	provider string
	roles    []string
}

// Username implements User.
func (u *ReadOnlyUser) Username() string {
	return u.username
}

// Subject implements User.
func (u *ReadOnlyUser) Subject() string {
	return u.subject
}

// Provider implements User.
func (u *ReadOnlyUser) Provider() string {
	return u.provider
}

// Roles implements User.
func (u *ReadOnlyUser) Roles() []string {
	return u.roles
}

var _ User = &ReadOnlyUser{}

func NewReadOnlyUser(username, subject, provider string, roles ...string) *ReadOnlyUser {
	return &ReadOnlyUser{
		username: username,
		subject:  subject,
		provider: provider,
		roles:    roles,
	}
}

func UserString(user User) string {
	if user == nil {
		return "<anonymous>"
	}

	return user.Provider() + "/" + user.Username()
}
