package domain

import "time"

// Credentials is the bearer pair held by an authenticated session.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// IsZero reports whether neither token is set.
func (c Credentials) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// Category is the closed taxonomy every failed API call is mapped onto.
type Category string

const (
	CategoryAuth       Category = "AUTH"
	CategoryUser       Category = "USER"
	CategoryPermission Category = "PERMISSION"
	CategoryValidation Category = "VALIDATION"
	CategoryResource   Category = "RESOURCE"
	CategoryClub       Category = "CLUB"
	CategoryChild      Category = "CHILD"
	CategoryProfile    Category = "PROFILE"
	CategoryContact    Category = "CONTACT"
	CategoryContent    Category = "CONTENT"
	CategoryInternal   Category = "INTERNAL"
	CategoryNetwork    Category = "NETWORK"
	CategoryUnknown    Category = "UNKNOWN"
)

// ResourceLike reports whether the category belongs to the group whose toast
// variant depends on the HTTP status (conflict, not found).
func (c Category) ResourceLike() bool {
	switch c {
	case CategoryUser, CategoryResource, CategoryClub, CategoryChild,
		CategoryProfile, CategoryContact, CategoryContent:
		return true
	default:
		return false
	}
}

// ClassifiedError is the taxonomy-normalized view of one failed call.
// Empty strings and a zero HTTPStatus stand for "not present".
type ClassifiedError struct {
	Category         Category
	Code             string
	Message          string
	Field            string
	HTTPStatus       int
	RequiresRedirect bool
	RequiresLogout   bool
	RedirectTo       string
}

// ToastVariant selects how a notification is presented.
type ToastVariant string

const (
	ToastDefault ToastVariant = "default"
	ToastError   ToastVariant = "error"
	ToastSuccess ToastVariant = "success"
	ToastWarning ToastVariant = "warning"
	ToastInfo    ToastVariant = "info"
)

// Toast is a transient, non-blocking notification consumed once by the UI.
type Toast struct {
	Message          string
	Variant          ToastVariant
	AutoHideDuration time.Duration
}
