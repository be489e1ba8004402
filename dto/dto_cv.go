package dto

import "socialfeed/internal/models"

type EducationEntry struct {
	Institution  string `json:"institution"  validate:"required,max=200"`
	Degree       string `json:"degree"       validate:"max=200"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"max=200"`
	StartDate    string `json:"startDate"    validate:"max=32"`
	EndDate      string `json:"endDate"      validate:"max=32"`
	Description  string `json:"description"  validate:"max=5000"`
}

type WorkEntry struct {
	Position    string `json:"position"    validate:"required,max=200"`
	Company     string `json:"company"     validate:"required,max=200"`
	StartDate   string `json:"startDate"   validate:"max=32"`
	EndDate     string `json:"endDate"     validate:"max=32"`
	Description string `json:"description" validate:"max=5000"`
}

type ServiceEntry struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
}

type BreakEntry struct {
	Reason    string `json:"reason"    validate:"required,max=500"`
	StartDate string `json:"startDate" validate:"max=32"`
	EndDate   string `json:"endDate"   validate:"max=32"`
}

type Skill struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Proficiency string `json:"proficiency" validate:"required,oneof=Beginner Intermediate Advanced"`
}

// CVPayload is the version 1 CV schema. A section left out of the JSON body
// stays nil and is treated as not provided.
type CVPayload struct {
	Education      []EducationEntry `json:"education"      validate:"omitempty,dive"`
	WorkExperience []WorkEntry      `json:"workExperience" validate:"omitempty,dive"`
	Services       []ServiceEntry   `json:"services"       validate:"omitempty,dive"`
	CareerBreak    []BreakEntry     `json:"careerBreak"    validate:"omitempty,dive"`
	Skills         []Skill          `json:"skills"         validate:"omitempty,dive"`
}

type UpdateCVReq struct {
	CVID string `json:"cvId" validate:"required"`
	CVPayload
}

type CreateCVResp struct {
	Message string `json:"message"`
	CVID    string `json:"cvId"`
}

// Sections converts the payload to the stored form, keeping nil sections nil.
func (p CVPayload) Sections() models.CVSections {
	var s models.CVSections
	if p.Education != nil {
		s.Education = make([]models.EducationEntry, len(p.Education))
		for i, e := range p.Education {
			s.Education[i] = models.EducationEntry(e)
		}
	}
	if p.WorkExperience != nil {
		s.WorkExperience = make([]models.WorkEntry, len(p.WorkExperience))
		for i, e := range p.WorkExperience {
			s.WorkExperience[i] = models.WorkEntry(e)
		}
	}
	if p.Services != nil {
		s.Services = make([]models.ServiceEntry, len(p.Services))
		for i, e := range p.Services {
			s.Services[i] = models.ServiceEntry(e)
		}
	}
	if p.CareerBreak != nil {
		s.CareerBreak = make([]models.BreakEntry, len(p.CareerBreak))
		for i, e := range p.CareerBreak {
			s.CareerBreak[i] = models.BreakEntry(e)
		}
	}
	if p.Skills != nil {
		s.Skills = make([]models.Skill, len(p.Skills))
		for i, e := range p.Skills {
			s.Skills[i] = models.Skill{Name: e.Name, Proficiency: models.Proficiency(e.Proficiency)}
		}
	}
	return s
}
