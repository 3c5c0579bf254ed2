package services

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rameshbanala/resume-analyzer/internal/models"
)

const (
	MinResumeRating     = 1
	MaxResumeRating     = 10
	DefaultResumeRating = 5
)

var reLeadingInt = regexp.MustCompile(`^[+-]?\d+`)

// ParseResumeObject decodes a located JSON span into a generic object.
func ParseResumeObject(span string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(span), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("invalid JSON structure: null object")
	}
	return m, nil
}

// RepairRecord coerces a loosely typed model response into a canonical record.
// Sequence fields that are not sequences become empty, and the rating is forced
// into [1,10].
func RepairRecord(m map[string]any) *models.ResumeRecord {
	return &models.ResumeRecord{
		Name:         optionalString(m["name"]),
		Email:        optionalString(m["email"]),
		Phone:        optionalString(m["phone"]),
		LinkedinURL:  optionalString(m["linkedin_url"]),
		PortfolioURL: optionalString(m["portfolio_url"]),
		Summary:      optionalString(m["summary"]),

		WorkExperience:     objectList(m["work_experience"], toWorkExperience),
		Education:          objectList(m["education"], toEducation),
		TechnicalSkills:    stringList(m["technical_skills"]),
		SoftSkills:         stringList(m["soft_skills"]),
		Projects:           objectList(m["projects"], toProject),
		Certifications:     objectList(m["certifications"], toCertification),
		ResumeRating:       NormalizeRating(m["resume_rating"]),
		ImprovementAreas:   optionalString(m["improvement_areas"]),
		UpskillSuggestions: stringList(m["upskill_suggestions"]),
	}
}

// NormalizeRating parses v as an integer in [1,10], falling back to 5.
func NormalizeRating(v any) int {
	var rating int
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return DefaultResumeRating
		}
		rating = int(math.Trunc(t))
	case string:
		digits := reLeadingInt.FindString(strings.TrimSpace(t))
		if digits == "" {
			return DefaultResumeRating
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return DefaultResumeRating
		}
		rating = n
	default:
		return DefaultResumeRating
	}

	if rating < MinResumeRating || rating > MaxResumeRating {
		return DefaultResumeRating
	}
	return rating
}

func optionalString(v any) *string {
	s := scalarString(v)
	if s == "" {
		return nil
	}
	return &s
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// stringList keeps order and duplicates; non-scalar items are dropped.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := scalarString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func objectList[T any](v any, convert func(map[string]any) T) []T {
	items, ok := v.([]any)
	if !ok {
		return []T{}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, convert(obj))
		}
	}
	return out
}

func toWorkExperience(m map[string]any) models.WorkExperience {
	return models.WorkExperience{
		Role:        scalarString(m["role"]),
		Company:     scalarString(m["company"]),
		Duration:    scalarString(m["duration"]),
		Description: stringList(m["description"]),
	}
}

func toEducation(m map[string]any) models.Education {
	return models.Education{
		Degree:         scalarString(m["degree"]),
		Institution:    scalarString(m["institution"]),
		GraduationYear: scalarString(m["graduation_year"]),
	}
}

func toProject(m map[string]any) models.Project {
	return models.Project{
		Name:         scalarString(m["name"]),
		Description:  scalarString(m["description"]),
		Technologies: stringList(m["technologies"]),
	}
}

func toCertification(m map[string]any) models.Certification {
	return models.Certification{
		Name:   scalarString(m["name"]),
		Issuer: scalarString(m["issuer"]),
		Date:   scalarString(m["date"]),
	}
}
