package dto

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/apperr"
	"socialfeed/internal/models"
)

func TestValidate_ReportsJSONFieldName(t *testing.T) {
	err := Validate(SendMessageReq{Text: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, "receiverId is required", appErr.Message())
}

func TestValidate_CVSkillProficiency(t *testing.T) {
	err := Validate(CVPayload{Skills: []Skill{{Name: "Go", Proficiency: "Expert"}}})
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Message(), "proficiency")
	assert.Contains(t, appErr.Message(), "Beginner Intermediate Advanced")

	assert.NoError(t, Validate(CVPayload{Skills: []Skill{{Name: "Go", Proficiency: "Advanced"}}}))
}

func TestValidate_UpdateCVRequiresID(t *testing.T) {
	err := Validate(UpdateCVReq{CVPayload: CVPayload{Services: []ServiceEntry{}}})
	require.Error(t, err)
	appErr, _ := apperr.From(err)
	assert.Equal(t, "cvId is required", appErr.Message())
}

func TestValidate_PostImageURL(t *testing.T) {
	assert.NoError(t, Validate(CreatePostReq{Text: "hello"}))
	assert.NoError(t, Validate(CreatePostReq{Text: "hello", ImageURL: "https://cdn.example.com/a.png"}))
	assert.Error(t, Validate(CreatePostReq{Text: "hello", ImageURL: "not a url"}))
}

func TestCreatePostReqBody(t *testing.T) {
	assert.Equal(t, "a", CreatePostReq{Text: "a", PostInput: "b"}.Body())
	assert.Equal(t, "b", CreatePostReq{PostInput: "b"}.Body())
	assert.Equal(t, "real text", CreatePostReq{Text: "   ", PostInput: "real text"}.Body())
	assert.Equal(t, "", CreatePostReq{Text: " ", PostInput: "\t"}.Body())
}

func TestCVPayloadSections_KeepsAbsentSectionsNil(t *testing.T) {
	s := CVPayload{
		Skills:   []Skill{{Name: "Go", Proficiency: "Beginner"}},
		Services: []ServiceEntry{},
	}.Sections()

	assert.Equal(t, []models.Skill{{Name: "Go", Proficiency: models.Beginner}}, s.Skills)
	assert.NotNil(t, s.Services)
	assert.Empty(t, s.Services)
	assert.Nil(t, s.Education)
	assert.Nil(t, s.WorkExperience)
	assert.Nil(t, s.CareerBreak)
}
