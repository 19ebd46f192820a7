// Package apierror turns failed calls to the clubinho backend into a closed
// taxonomy that the rest of the client can switch on without knowing the
// backend wire format.
package apierror

import "github.com/waabox/clubinho/internal/domain"

// Code is a backend error code. The set of implementations is closed: each
// category owns a distinct string type, so adding a code means choosing its
// category at the declaration.
type Code interface {
	String() string
	isCode()
}

type (
	AuthCode       string
	UserCode       string
	PermissionCode string
	ValidationCode string
	ResourceCode   string
	ClubCode       string
	ChildCode      string
	ProfileCode    string
	ContactCode    string
	ContentCode    string
	InternalCode   string
)

func (c AuthCode) String() string       { return string(c) }
func (c UserCode) String() string       { return string(c) }
func (c PermissionCode) String() string { return string(c) }
func (c ValidationCode) String() string { return string(c) }
func (c ResourceCode) String() string   { return string(c) }
func (c ClubCode) String() string       { return string(c) }
func (c ChildCode) String() string      { return string(c) }
func (c ProfileCode) String() string    { return string(c) }
func (c ContactCode) String() string    { return string(c) }
func (c ContentCode) String() string    { return string(c) }
func (c InternalCode) String() string   { return string(c) }

func (AuthCode) isCode()       {}
func (UserCode) isCode()       {}
func (PermissionCode) isCode() {}
func (ValidationCode) isCode() {}
func (ResourceCode) isCode()   {}
func (ClubCode) isCode()       {}
func (ChildCode) isCode()      {}
func (ProfileCode) isCode()    {}
func (ContactCode) isCode()    {}
func (ContentCode) isCode()    {}
func (InternalCode) isCode()   {}

const (
	CodeInvalidCredentials  AuthCode = "AUTH_1001"
	CodeTokenExpired        AuthCode = "AUTH_1002"
	CodeTokenInvalid        AuthCode = "AUTH_1003"
	CodeTokenMissing        AuthCode = "AUTH_1004"
	CodeRefreshTokenInvalid AuthCode = "AUTH_1005"
	CodeAccountInactive     AuthCode = "AUTH_1006"
	CodeGoogleAuthFailed    AuthCode = "AUTH_1007"
)

const (
	CodeUserNotFound     UserCode = "USER_2001"
	CodeEmailInUse       UserCode = "USER_2002"
	CodeUserInactive     UserCode = "USER_2003"
	CodeCannotDeleteSelf UserCode = "USER_2004"
)

const (
	CodeAccessDenied     PermissionCode = "PERM_3001"
	CodeInsufficientRole PermissionCode = "PERM_3002"
	CodeNotClubMember    PermissionCode = "PERM_3003"
)

const (
	CodeInvalidInput  ValidationCode = "VAL_4001"
	CodeRequiredField ValidationCode = "VAL_4002"
	CodeInvalidEmail  ValidationCode = "VAL_4003"
	CodeInvalidPhone  ValidationCode = "VAL_4004"
	CodeInvalidDate   ValidationCode = "VAL_4005"
	CodeInvalidFormat ValidationCode = "VAL_4006"
	CodeWeakPassword  ValidationCode = "VAL_4007"
)

const (
	CodeResourceNotFound ResourceCode = "RES_5001"
	CodeResourceExists   ResourceCode = "RES_5002"
	CodeResourceConflict ResourceCode = "RES_5003"
)

const (
	CodeClubNotFound    ClubCode = "CLUB_6001"
	CodeClubInactive    ClubCode = "CLUB_6002"
	CodeClubNumberInUse ClubCode = "CLUB_6003"
	CodeClubHasChildren ClubCode = "CLUB_6004"
)

const (
	CodeChildNotFound        ChildCode = "CHILD_7001"
	CodeChildAlreadyEnrolled ChildCode = "CHILD_7002"
	CodeChildInvalidAge      ChildCode = "CHILD_7003"
)

const (
	CodeProfileNotFound   ProfileCode = "PROFILE_8001"
	CodeProfileIncomplete ProfileCode = "PROFILE_8002"
)

const (
	CodeContactNotFound   ContactCode = "CONTACT_9001"
	CodeContactSendFailed ContactCode = "CONTACT_9002"
)

const (
	CodeContentNotFound        ContentCode = "CONTENT_10001"
	CodeContentUploadFailed    ContentCode = "CONTENT_10002"
	CodeContentUnsupportedType ContentCode = "CONTENT_10003"
)

const (
	CodeInternal           InternalCode = "INTERNAL_0001"
	CodeDatabase           InternalCode = "INTERNAL_0002"
	CodeExternalService    InternalCode = "INTERNAL_0003"
	CodeServiceUnavailable InternalCode = "INTERNAL_0004"
)

// Codes lists every code the backend is known to emit.
var Codes = []Code{
	CodeInvalidCredentials, CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing,
	CodeRefreshTokenInvalid, CodeAccountInactive, CodeGoogleAuthFailed,

	CodeUserNotFound, CodeEmailInUse, CodeUserInactive, CodeCannotDeleteSelf,

	CodeAccessDenied, CodeInsufficientRole, CodeNotClubMember,

	CodeInvalidInput, CodeRequiredField, CodeInvalidEmail, CodeInvalidPhone,
	CodeInvalidDate, CodeInvalidFormat, CodeWeakPassword,

	CodeResourceNotFound, CodeResourceExists, CodeResourceConflict,

	CodeClubNotFound, CodeClubInactive, CodeClubNumberInUse, CodeClubHasChildren,

	CodeChildNotFound, CodeChildAlreadyEnrolled, CodeChildInvalidAge,

	CodeProfileNotFound, CodeProfileIncomplete,

	CodeContactNotFound, CodeContactSendFailed,

	CodeContentNotFound, CodeContentUploadFailed, CodeContentUnsupportedType,

	CodeInternal, CodeDatabase, CodeExternalService, CodeServiceUnavailable,
}

var knownCodes = func() map[string]Code {
	m := make(map[string]Code, len(Codes))
	for _, c := range Codes {
		m[c.String()] = c
	}
	return m
}()

// Lookup resolves a wire code string to its typed Code.
func Lookup(s string) (Code, bool) {
	c, ok := knownCodes[s]
	return c, ok
}

// CategoryOf returns the taxonomy category a code belongs to.
func CategoryOf(c Code) domain.Category {
	switch c.(type) {
	case AuthCode:
		return domain.CategoryAuth
	case UserCode:
		return domain.CategoryUser
	case PermissionCode:
		return domain.CategoryPermission
	case ValidationCode:
		return domain.CategoryValidation
	case ResourceCode:
		return domain.CategoryResource
	case ClubCode:
		return domain.CategoryClub
	case ChildCode:
		return domain.CategoryChild
	case ProfileCode:
		return domain.CategoryProfile
	case ContactCode:
		return domain.CategoryContact
	case ContentCode:
		return domain.CategoryContent
	case InternalCode:
		return domain.CategoryInternal
	default:
		return domain.CategoryUnknown
	}
}

// forcesLogout reports whether an auth code means the stored session can no longer be used.
func forcesLogout(c Code) bool {
	switch c {
	case CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing, CodeRefreshTokenInvalid:
		return true
	default:
		return false
	}
}
