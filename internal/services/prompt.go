package services

import (
	"fmt"
	"strings"
)

// resumeSchema is the JSON shape the model must return. Field names match the
// persisted record exactly.
const resumeSchema = `{
  "name": "string | null",
  "email": "string | null",
  "phone": "string | null",
  "linkedin_url": "string | null",
  "portfolio_url": "string | null",
  "summary": "string | null",
  "work_experience": [{"role": "string", "company": "string", "duration": "string", "description": ["string"]}],
  "education": [{"degree": "string", "institution": "string", "graduation_year": "string"}],
  "technical_skills": ["string"],
  "soft_skills": ["string"],
  "projects": [{"name": "string", "description": "string", "technologies": ["string"]}],
  "certifications": [{"name": "string", "issuer": "string", "date": "string"}],
  "resume_rating": 1-10,
  "improvement_areas": "string",
  "upskill_suggestions": ["string"]
}`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates the extraction prompt for one resume.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert technical recruiter and career coach. Analyze the following resume text and extract the information into a valid JSON object.

IMPORTANT INSTRUCTIONS:
1. Return ONLY a valid JSON object, no additional text or formatting
2. If a field cannot be found, use null for strings or [] for arrays
3. Ensure all field names match exactly as specified
4. For resume_rating, provide an integer score from 1-10 based on completeness, formatting, and content quality
5. For improvement_areas, provide specific, actionable feedback
6. For upskill_suggestions, recommend relevant technical skills based on the role/industry

Resume Text:
"""
%s
"""

Required JSON Structure:
%s`, strings.TrimSpace(resumeText), resumeSchema)
}
