package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
	"socialfeed/internal/repository/memstore"
)

func newCVService() *CVService {
	svc := NewCVService(memstore.NewCVs(), nopLog)
	svc.now = stepClock()
	return svc
}

func TestCreateCV(t *testing.T) {
	ctx := context.Background()
	svc := newCVService()

	cv, err := svc.Create(ctx, "u1", models.CVSections{
		Skills: []models.Skill{{Name: "Go", Proficiency: models.Advanced}},
	})
	require.NoError(t, err)
	assert.False(t, cv.ID.IsZero())
	assert.Equal(t, models.CVSchemaVersion, cv.SchemaVersion)
	assert.NotNil(t, cv.Education)
	assert.Empty(t, cv.Education)

	_, err = svc.Create(ctx, "u1", models.CVSections{})
	assert.True(t, errors.Is(err, apperr.ErrConflict))

	_, err = svc.Create(ctx, "", models.CVSections{})
	assert.True(t, errors.Is(err, apperr.ErrAuth))
}

func TestGetCV(t *testing.T) {
	ctx := context.Background()
	svc := newCVService()
	created, err := svc.Create(ctx, "u1", models.CVSections{})
	require.NoError(t, err)

	got, err := svc.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByUser(ctx, "u2")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = svc.GetByUser(ctx, "")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.GetByID(ctx, bson.NewObjectID())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAddOrUpdateCV_ReplaceArraySemantics(t *testing.T) {
	ctx := context.Background()
	svc := newCVService()
	created, err := svc.Create(ctx, "u1", models.CVSections{
		Education: []models.EducationEntry{{Institution: "KU", Degree: "BSc"}},
		Services:  []models.ServiceEntry{{Title: "Mentoring"}},
		Skills:    []models.Skill{{Name: "Go", Proficiency: models.Beginner}},
	})
	require.NoError(t, err)

	updated, err := svc.AddOrUpdateCV(ctx, "u1", created.ID, models.CVSections{
		Skills:         []models.Skill{{Name: "Go", Proficiency: models.Advanced}},
		WorkExperience: []models.WorkEntry{{Position: "Engineer", Company: "Acme"}},
		Services:       []models.ServiceEntry{},
	})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	stored, err := svc.GetByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []models.EducationEntry{{Institution: "KU", Degree: "BSc"}}, stored.Education)
	assert.Equal(t, []models.Skill{{Name: "Go", Proficiency: models.Advanced}}, stored.Skills)
	assert.Equal(t, []models.WorkEntry{{Position: "Engineer", Company: "Acme"}}, stored.WorkExperience)
	assert.Empty(t, stored.Services)
	assert.NotNil(t, stored.CareerBreak)
}

func TestAddOrUpdateCV_Rejections(t *testing.T) {
	ctx := context.Background()
	svc := newCVService()
	created, err := svc.Create(ctx, "u1", models.CVSections{})
	require.NoError(t, err)

	_, err = svc.AddOrUpdateCV(ctx, "u2", created.ID, models.CVSections{})
	assert.True(t, errors.Is(err, apperr.ErrAuth))

	_, err = svc.AddOrUpdateCV(ctx, "u1", bson.NewObjectID(), models.CVSections{})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}
