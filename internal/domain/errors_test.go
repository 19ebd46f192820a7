// internal/domain/errors_test.go
package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/waabox/clubinho/internal/domain"
)

func TestErrUnauthorized_CanBeDetectedWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("clubinho API error: %w", domain.ErrUnauthorized)
	if !errors.Is(wrapped, domain.ErrUnauthorized) {
		t.Error("expected errors.Is to detect ErrUnauthorized in wrapped error")
	}
}

func TestCredentials_IsZero(t *testing.T) {
	if !(domain.Credentials{}).IsZero() {
		t.Error("expected empty credentials to be zero")
	}
	if (domain.Credentials{RefreshToken: "r"}).IsZero() {
		t.Error("expected credentials with a refresh token not to be zero")
	}
}

func TestCategory_ResourceLike(t *testing.T) {
	resourceLike := []domain.Category{
		domain.CategoryUser, domain.CategoryResource, domain.CategoryClub,
		domain.CategoryChild, domain.CategoryProfile, domain.CategoryContact,
		domain.CategoryContent,
	}
	for _, c := range resourceLike {
		if !c.ResourceLike() {
			t.Errorf("expected %s to be resource-like", c)
		}
	}
	for _, c := range []domain.Category{
		domain.CategoryAuth, domain.CategoryPermission, domain.CategoryValidation,
		domain.CategoryInternal, domain.CategoryNetwork, domain.CategoryUnknown,
	} {
		if c.ResourceLike() {
			t.Errorf("expected %s not to be resource-like", c)
		}
	}
}
