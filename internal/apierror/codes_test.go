package apierror_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/clubinho/internal/apierror"
	"github.com/waabox/clubinho/internal/domain"
)

var prefixCategory = map[string]domain.Category{
	"AUTH_":     domain.CategoryAuth,
	"USER_":     domain.CategoryUser,
	"PERM_":     domain.CategoryPermission,
	"VAL_":      domain.CategoryValidation,
	"RES_":      domain.CategoryResource,
	"CLUB_":     domain.CategoryClub,
	"CHILD_":    domain.CategoryChild,
	"PROFILE_":  domain.CategoryProfile,
	"CONTACT_":  domain.CategoryContact,
	"CONTENT_":  domain.CategoryContent,
	"INTERNAL_": domain.CategoryInternal,
}

func TestCodes_EveryCodeResolvesToItsCategory(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range apierror.Codes {
		require.False(t, seen[c.String()], "duplicate code %s", c)
		seen[c.String()] = true

		got, ok := apierror.Lookup(c.String())
		require.True(t, ok, "code %s not registered", c)
		assert.Equal(t, c, got)

		category := apierror.CategoryOf(c)
		assert.NotEqual(t, domain.CategoryUnknown, category, "code %s has no category", c)

		var matched bool
		for prefix, want := range prefixCategory {
			if strings.HasPrefix(c.String(), prefix) {
				matched = true
				assert.Equal(t, want, category, "code %s", c)
			}
		}
		assert.True(t, matched, "code %s has an unexpected prefix", c)
	}
}

func TestLookup_UnknownCode(t *testing.T) {
	_, ok := apierror.Lookup("NOPE_0000")
	assert.False(t, ok)
}

func TestCategoryOf_KnownExamples(t *testing.T) {
	assert.Equal(t, domain.CategoryAuth, apierror.CategoryOf(apierror.CodeTokenExpired))
	assert.Equal(t, domain.CategoryPermission, apierror.CategoryOf(apierror.CodeAccessDenied))
	assert.Equal(t, domain.CategoryClub, apierror.CategoryOf(apierror.CodeClubNumberInUse))
	assert.Equal(t, domain.CategoryValidation, apierror.CategoryOf(apierror.CodeInvalidDate))
}
