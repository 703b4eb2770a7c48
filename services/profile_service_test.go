package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
)

func TestEmployerProfileOwnership(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewEmployerProfileService(db)
	owner := createUser(t, db, "acme", models.RoleEmployer)
	rival := createUser(t, db, "globex", models.RoleEmployer)
	company := createCompany(t, db, owner)
	rivalCompany := createCompany(t, db, rival)

	_, err := svc.Mine(ctx, owner)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	profile, err := svc.Create(ctx, owner, EmployerProfileInput{Designation: ptr(" Recruiter "), CompanyID: &company.ID})
	require.NoError(t, err)
	assert.Equal(t, "Recruiter", profile.Designation)
	assert.Equal(t, models.CompanyVerificationPending, profile.VerificationStatus)

	_, err = svc.Create(ctx, owner, EmployerProfileInput{})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	_, err = svc.Create(ctx, rival, EmployerProfileInput{CompanyID: &company.ID})
	assert.Equal(t, utils.DenialOwnership, utils.ReasonOf(err))
	_, err = svc.Create(ctx, rival, EmployerProfileInput{CompanyID: ptr(uint(9999))})
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	_, err = svc.Update(ctx, rival, profile.ID, EmployerProfileInput{Designation: ptr("Stolen")})
	assert.Equal(t, utils.DenialOwnership, utils.ReasonOf(err))
	_, err = svc.Update(ctx, owner, profile.ID, EmployerProfileInput{CompanyID: &rivalCompany.ID})
	assert.Equal(t, utils.DenialOwnership, utils.ReasonOf(err))

	updated, err := svc.Update(ctx, owner, profile.ID, EmployerProfileInput{Designation: ptr("Head of Talent")})
	require.NoError(t, err)
	assert.Equal(t, "Head of Talent", updated.Designation)
	require.NotNil(t, updated.CompanyID)
	assert.Equal(t, company.ID, *updated.CompanyID)

	assert.Equal(t, utils.DenialOwnership, utils.ReasonOf(svc.Delete(ctx, rival, profile.ID)))
	require.NoError(t, svc.Delete(ctx, owner, profile.ID))
	_, err = svc.Get(ctx, profile.ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestEmployerProfileUpdateMineCreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewEmployerProfileService(db)
	owner := createUser(t, db, "acme", models.RoleEmployer)

	created, err := svc.UpdateMine(ctx, owner, EmployerProfileInput{Designation: ptr("Founder")})
	require.NoError(t, err)

	again, err := svc.UpdateMine(ctx, owner, EmployerProfileInput{Designation: ptr("CEO")})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "CEO", again.Designation)

	var count int64
	require.NoError(t, db.Model(&models.EmployerProfile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSeekerProfileLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewSeekerProfileService(db)
	seeker := createUser(t, db, "sam", models.RoleJobSeeker)
	other := createUser(t, db, "ola", models.RoleJobSeeker)

	profile, err := svc.Create(ctx, seeker, SeekerProfileInput{
		Skills:         &[]string{" Go ", "SQL"},
		Education:      &[]models.EducationItem{{Institution: "UI", Degree: "BSc"}},
		ExpectedSalary: ptr(5000.0),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, []string(profile.Skills))
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "UI", profile.Education[0].Institution)

	_, err = svc.Create(ctx, seeker, SeekerProfileInput{})
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	mine, err := svc.Mine(ctx, seeker)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, mine.ID)

	_, err = svc.Update(ctx, other, profile.ID, SeekerProfileInput{Resume: ptr("x.pdf")})
	assert.Equal(t, utils.DenialOwnership, utils.ReasonOf(err))

	updated, err := svc.UpdateMine(ctx, seeker, SeekerProfileInput{
		Experience:        &[]models.ExperienceItem{{Company: "Acme", Title: "Intern"}},
		PreferredLocation: ptr("Bandung"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Bandung", updated.PreferredLocation)
	assert.Len(t, updated.Experience, 1)
	assert.Equal(t, []string{"Go", "SQL"}, []string(updated.Skills))

	assert.Equal(t, utils.DenialOwnership, utils.ReasonOf(svc.Delete(ctx, other, profile.ID)))
	require.NoError(t, svc.Delete(ctx, seeker, profile.ID))
}

func TestSeekerProfileValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewSeekerProfileService(db)
	seeker := createUser(t, db, "sam", models.RoleJobSeeker)

	cases := map[string]SeekerProfileInput{
		"negative salary":  {ExpectedSalary: ptr(-1.0)},
		"education degree": {Education: &[]models.EducationItem{{Institution: "UI"}}},
		"experience title": {Experience: &[]models.ExperienceItem{{Company: "Acme", Title: " "}}},
	}
	for name, in := range cases {
		_, err := svc.Create(ctx, seeker, in)
		assert.True(t, utils.IsKind(err, utils.KindBadRequest), name)
	}

	var count int64
	require.NoError(t, db.Model(&models.SeekerProfile{}).Count(&count).Error)
	assert.Zero(t, count)
}
