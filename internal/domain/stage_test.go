package domain_test

import (
	"testing"

	"go-jobmatch-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func ptr(s string) *string { return &s }

func TestCalculateStage(t *testing.T) {
	cases := []struct {
		name string
		user domain.User
		in   domain.StageInputs
		want string
	}{
		{
			name: "student with empty profile stays anonymous",
			user: domain.User{Role: domain.RoleStudent},
			want: domain.StageAnonymous,
		},
		{
			name: "student missing city stays anonymous",
			user: domain.User{Role: domain.RoleStudent, FirstName: ptr("Anna"), LastName: ptr("Schmidt")},
			want: domain.StageAnonymous,
		},
		{
			name: "student with name and city reaches profile_filled",
			user: domain.User{Role: domain.RoleStudent, FirstName: ptr("Anna"), LastName: ptr("Schmidt"), City: ptr("Hamburg")},
			want: domain.StageProfileFilled,
		},
		{
			name: "student with a published resume is fully activated",
			user: domain.User{Role: domain.RoleStudent, FirstName: ptr("Anna"), LastName: ptr("Schmidt"), City: ptr("Hamburg")},
			in:   domain.StageInputs{PublishedResumes: 1},
			want: domain.StageFullyActivated,
		},
		{
			name: "published resume does not compensate a missing name",
			user: domain.User{Role: domain.RoleStudent, City: ptr("Hamburg")},
			in:   domain.StageInputs{PublishedResumes: 3},
			want: domain.StageAnonymous,
		},
		{
			name: "employer with company and city reaches profile_filled",
			user: domain.User{Role: domain.RoleEmployer, CompanyName: ptr("Acme"), City: ptr("Berlin")},
			want: domain.StageProfileFilled,
		},
		{
			name: "employer with an active vacancy is fully activated",
			user: domain.User{Role: domain.RoleEmployer, CompanyName: ptr("Acme"), City: ptr("Berlin")},
			in:   domain.StageInputs{ActiveVacancies: 2},
			want: domain.StageFullyActivated,
		},
		{
			name: "employer blank company counts as unset",
			user: domain.User{Role: domain.RoleEmployer, CompanyName: ptr(""), City: ptr("Berlin")},
			want: domain.StageAnonymous,
		},
		{
			name: "admin keeps its current stage",
			user: domain.User{Role: domain.RoleAdmin, RegistrationStage: domain.StageFullyActivated},
			want: domain.StageFullyActivated,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.CalculateStage(&tc.user, tc.in))
		})
	}
}

func TestStageAtLeast(t *testing.T) {
	assert.True(t, domain.StageAtLeast(domain.StageFullyActivated, domain.StageProfileFilled))
	assert.True(t, domain.StageAtLeast(domain.StageProfileFilled, domain.StageProfileFilled))
	assert.False(t, domain.StageAtLeast(domain.StageAnonymous, domain.StageProfileFilled))
	// Unknown values rank lowest on the ladder
	assert.False(t, domain.StageAtLeast("", domain.StageProfileFilled))
	assert.True(t, domain.StageAtLeast("garbage", domain.StageAnonymous))
}

func TestInvitationParties(t *testing.T) {
	inv := domain.Invitation{StudentID: "s", EmployerID: "e", Type: domain.InvitationTypeResponse}
	assert.Equal(t, "s", inv.SenderID())
	assert.Equal(t, "e", inv.ReceiverID())

	inv.Type = domain.InvitationTypeOffer
	assert.Equal(t, "e", inv.SenderID())
	assert.Equal(t, "s", inv.ReceiverID())
}

func TestInvitationCanTransition(t *testing.T) {
	inv := domain.Invitation{Status: domain.InvitationStatusSent}
	assert.True(t, inv.CanTransition(domain.InvitationStatusAccepted))
	assert.True(t, inv.CanTransition(domain.InvitationStatusExpired))
	assert.False(t, inv.CanTransition("sent"))

	for _, terminal := range []string{
		domain.InvitationStatusAccepted,
		domain.InvitationStatusRejected,
		domain.InvitationStatusExpired,
		domain.InvitationStatusCancelled,
	} {
		inv.Status = terminal
		assert.False(t, inv.CanTransition(domain.InvitationStatusAccepted), terminal)
	}
}

func TestDisplayName(t *testing.T) {
	student := domain.User{Role: domain.RoleStudent, Email: "s@test", FirstName: ptr("Anna"), LastName: ptr("Schmidt")}
	assert.Equal(t, "Anna Schmidt", student.DisplayName())

	employer := domain.User{Role: domain.RoleEmployer, Email: "e@test", CompanyName: ptr("Acme")}
	assert.Equal(t, "Acme", employer.DisplayName())

	bare := domain.User{Role: domain.RoleStudent, Email: "fallback@test"}
	assert.Equal(t, "fallback@test", bare.DisplayName())
}
