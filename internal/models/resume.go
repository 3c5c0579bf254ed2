package models

import "time"

type WorkExperience struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration"`
	Description []string `json:"description"`
}

type Education struct {
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	GraduationYear string `json:"graduation_year"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// ResumeRecord is the canonical structured result of analysing one resume.
// Slice fields are never nil once the record has been repaired.
type ResumeRecord struct {
	Name         *string `gorm:"type:text" json:"name"`
	Email        *string `gorm:"type:text" json:"email"`
	Phone        *string `gorm:"type:text" json:"phone"`
	LinkedinURL  *string `gorm:"type:text" json:"linkedin_url"`
	PortfolioURL *string `gorm:"type:text" json:"portfolio_url"`
	Summary      *string `gorm:"type:text" json:"summary"`

	WorkExperience     []WorkExperience `gorm:"type:jsonb;serializer:json" json:"work_experience"`
	Education          []Education      `gorm:"type:jsonb;serializer:json" json:"education"`
	TechnicalSkills    []string         `gorm:"type:jsonb;serializer:json" json:"technical_skills"`
	SoftSkills         []string         `gorm:"type:jsonb;serializer:json" json:"soft_skills"`
	Projects           []Project        `gorm:"type:jsonb;serializer:json" json:"projects"`
	Certifications     []Certification  `gorm:"type:jsonb;serializer:json" json:"certifications"`
	ResumeRating       int              `gorm:"type:integer" json:"resume_rating"`
	ImprovementAreas   *string          `gorm:"type:text" json:"improvement_areas"`
	UpskillSuggestions []string         `gorm:"type:jsonb;serializer:json" json:"upskill_suggestions"`
}

// HasIdentity reports whether the record names the candidate or a way to reach them.
func (r *ResumeRecord) HasIdentity() bool {
	return r.Name != nil || r.Email != nil
}

// Resume is a persisted ResumeRecord. ID and UploadedAt are assigned by storage.
type Resume struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FileName   string    `gorm:"type:text;not null" json:"file_name"`
	FileHash   string    `gorm:"type:char(64);uniqueIndex" json:"-"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	ResumeRecord `gorm:"embedded"`
}

func (Resume) TableName() string {
	return "resumes"
}

// NewResume prepares a record for insertion.
func NewResume(fileName, fileHash string, record *ResumeRecord) *Resume {
	return &Resume{
		FileName:     fileName,
		FileHash:     fileHash,
		ResumeRecord: *record,
	}
}

// ResumeSummary is the row shape returned by listings.
type ResumeSummary struct {
	ID           uint      `json:"id"`
	FileName     string    `json:"file_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Name         *string   `json:"name"`
	Email        *string   `json:"email"`
	ResumeRating int       `json:"resume_rating"`
}
