package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// CVSchemaVersion is stamped on every stored CV.
const CVSchemaVersion = 1

type Proficiency string

const (
	Beginner     Proficiency = "Beginner"
	Intermediate Proficiency = "Intermediate"
	Advanced     Proficiency = "Advanced"
)

type EducationEntry struct {
	Institution  string `json:"institution"  bson:"institution"`
	Degree       string `json:"degree"       bson:"degree"`
	FieldOfStudy string `json:"fieldOfStudy" bson:"field_of_study"`
	StartDate    string `json:"startDate"    bson:"start_date"`
	EndDate      string `json:"endDate"      bson:"end_date"`
	Description  string `json:"description"  bson:"description"`
}

type WorkEntry struct {
	Position    string `json:"position"    bson:"position"`
	Company     string `json:"company"     bson:"company"`
	StartDate   string `json:"startDate"   bson:"start_date"`
	EndDate     string `json:"endDate"     bson:"end_date"`
	Description string `json:"description" bson:"description"`
}

type ServiceEntry struct {
	Title       string `json:"title"       bson:"title"`
	Description string `json:"description" bson:"description"`
}

type BreakEntry struct {
	Reason    string `json:"reason"    bson:"reason"`
	StartDate string `json:"startDate" bson:"start_date"`
	EndDate   string `json:"endDate"   bson:"end_date"`
}

type Skill struct {
	Name        string      `json:"name"        bson:"name"`
	Proficiency Proficiency `json:"proficiency" bson:"proficiency"`
}

// CVSections holds the mergeable parts of a CV. A nil slice means "not
// provided"; an empty slice means "clear this section".
type CVSections struct {
	Education      []EducationEntry `json:"education"      bson:"education"`
	WorkExperience []WorkEntry      `json:"workExperience" bson:"work_experience"`
	Services       []ServiceEntry   `json:"services"       bson:"services"`
	CareerBreak    []BreakEntry     `json:"careerBreak"    bson:"career_break"`
	Skills         []Skill          `json:"skills"         bson:"skills"`
}

type CV struct {
	ID            bson.ObjectID `json:"id"            bson:"_id,omitempty"`
	UserID        string        `json:"userId"        bson:"user_id"`
	SchemaVersion int           `json:"schemaVersion" bson:"schema_version"`
	CVSections    `bson:",inline"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

// Merge overwrites each section present in patch and leaves the others alone.
func (s *CVSections) Merge(patch CVSections) {
	if patch.Education != nil {
		s.Education = patch.Education
	}
	if patch.WorkExperience != nil {
		s.WorkExperience = patch.WorkExperience
	}
	if patch.Services != nil {
		s.Services = patch.Services
	}
	if patch.CareerBreak != nil {
		s.CareerBreak = patch.CareerBreak
	}
	if patch.Skills != nil {
		s.Skills = patch.Skills
	}
}

// Normalize replaces nil sections with empty ones so they persist as arrays.
func (s *CVSections) Normalize() {
	if s.Education == nil {
		s.Education = []EducationEntry{}
	}
	if s.WorkExperience == nil {
		s.WorkExperience = []WorkEntry{}
	}
	if s.Services == nil {
		s.Services = []ServiceEntry{}
	}
	if s.CareerBreak == nil {
		s.CareerBreak = []BreakEntry{}
	}
	if s.Skills == nil {
		s.Skills = []Skill{}
	}
}
