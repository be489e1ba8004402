package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"socialfeed/internal/apperr"
	"socialfeed/internal/logger"
	"socialfeed/internal/metrics"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
)

var (
	errCVNotFound = apperr.NotFound("CV not found")
	errCVExists   = apperr.Conflict("CV already exists for this user")
)

type CVService struct {
	cvs CVStore
	log zerolog.Logger
	now Clock
}

func NewCVService(cvs CVStore, log zerolog.Logger) *CVService {
	return &CVService{cvs: cvs, log: log, now: systemClock}
}

// Create stores the first CV of userID. Only one CV per user may exist.
func (s *CVService) Create(ctx context.Context, userID string, sections models.CVSections) (*models.CV, error) {
	if userID == "" {
		return nil, errUnauthenticated
	}

	_, err := s.cvs.FindByUser(ctx, userID)
	switch {
	case err == nil:
		return nil, errCVExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Persistence("Error creating CV", err)
	}

	sections.Normalize()
	now := s.now()
	cv := &models.CV{
		UserID:        userID,
		SchemaVersion: models.CVSchemaVersion,
		CVSections:    sections,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.cvs.Insert(ctx, cv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, errCVExists
		}
		return nil, apperr.Persistence("Error creating CV", err)
	}

	metrics.Event(metrics.CVCreated)
	logger.FromContext(ctx, s.log).Debug().Str("cv_id", cv.ID.Hex()).Msg("cv created")
	return cv, nil
}

func (s *CVService) GetByUser(ctx context.Context, userID string) (*models.CV, error) {
	if userID == "" {
		return nil, apperr.Validation("userId is required")
	}
	cv, err := s.cvs.FindByUser(ctx, userID)
	return s.found(cv, err)
}

func (s *CVService) GetByID(ctx context.Context, id bson.ObjectID) (*models.CV, error) {
	cv, err := s.cvs.FindByID(ctx, id)
	return s.found(cv, err)
}

func (s *CVService) found(cv *models.CV, err error) (*models.CV, error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, errCVNotFound
	case err != nil:
		return nil, apperr.Persistence("Error fetching CV", err)
	}
	return cv, nil
}

// AddOrUpdateCV merges patch into the CV identified by cvID. Each section
// present in patch replaces the stored section as a whole; absent sections
// are kept; an empty section clears it.
func (s *CVService) AddOrUpdateCV(ctx context.Context, callerID string, cvID bson.ObjectID, patch models.CVSections) (*models.CV, error) {
	if callerID == "" {
		return nil, errUnauthenticated
	}
	cv, err := s.GetByID(ctx, cvID)
	if err != nil {
		return nil, err
	}
	if cv.UserID != callerID {
		return nil, apperr.Auth("not allowed to update this CV")
	}

	cv.Merge(patch)
	cv.Normalize()
	cv.UpdatedAt = s.now()

	if err := s.cvs.SaveSections(ctx, cv.ID, cv.CVSections, cv.UpdatedAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errCVNotFound
		}
		return nil, apperr.Persistence("Error updating CV", err)
	}
	metrics.Event(metrics.CVUpdated)
	return cv, nil
}
