package models

import (
	"time"
)

// JobStatusActive marks a job that is open for applications. Only active jobs
// take part in company rollups and company-scoped listings.
const JobStatusActive = "active"

// Job is a posting in the Jobs collection. The same struct is stored by every
// backend: bson tags for Mongo, gorm tags for Postgres.
type Job struct {
	ID               string    `gorm:"primaryKey;type:uuid" bson:"-" json:"_id"`
	Title            string    `gorm:"not null" bson:"title" json:"title"`
	Company          string    `gorm:"index" bson:"company" json:"company"`
	CompanyLogo      string    `bson:"company_logo" json:"company_logo"`
	Location         string    `gorm:"index" bson:"location" json:"location"`
	Category         string    `gorm:"index" bson:"category" json:"category"`
	Description      string    `gorm:"type:text" bson:"description" json:"description"`
	JobType          string    `bson:"jobType" json:"jobType"`
	SalaryRange      string    `bson:"salaryRange" json:"salaryRange"`
	PostedBy         string    `gorm:"index" bson:"postedBy" json:"postedBy"`
	Status           string    `gorm:"index" bson:"status" json:"status"`
	IsFeatured       bool      `bson:"isFeatured" json:"isFeatured"`
	ApplicationCount int       `gorm:"not null;default:0" bson:"applicationCount" json:"applicationCount"`
	CreatedAt        time.Time `gorm:"index" bson:"createdAt" json:"createdAt"`
}

// JobApplication is a submission against a Job. JobID holds the job's
// identifier as a string, so it may refer to a job that no longer exists.
type JobApplication struct {
	ID                string  `gorm:"primaryKey;type:uuid" bson:"-" json:"_id"`
	JobID             string  `gorm:"index;not null" bson:"job_id" json:"job_id"`
	ApplicantEmail    string  `gorm:"index" bson:"applicant_email" json:"applicant_email"`
	ApplicantName     string  `bson:"applicant_name" json:"applicant_name"`
	ApplicantPhone    string  `bson:"applicant_phone" json:"applicant_phone"`
	ApplicantLinkedIn string  `gorm:"column:applicant_linkedin" bson:"applicant_linkedin" json:"applicant_linkedin"`
	ApplicantNotes    string  `gorm:"type:text" bson:"applicant_notes" json:"applicant_notes"`
	Resume            *string `bson:"resume" json:"resume"`
	CoverLetter       *string `bson:"coverLetter" json:"coverLetter"`
}

type Subscription struct {
	ID           string    `gorm:"primaryKey;type:uuid" bson:"-" json:"_id"`
	Email        string    `gorm:"index;not null" bson:"email" json:"email"`
	SubscribedAt time.Time `bson:"subscribedAt" json:"subscribedAt"`
}

// CompanySummary is derived from the active jobs on every request and never
// persisted. Rating and Reviews are synthesized.
type CompanySummary struct {
	Name     string  `json:"name"`
	Logo     string  `json:"logo"`
	Location string  `json:"location"`
	JobCount int     `json:"jobCount"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`
}

// EnrichedApplication is the applicant-facing view of a JobApplication. The
// job fields stay empty (and are omitted from JSON) when the referenced job
// could not be found.
type EnrichedApplication struct {
	JobApplication

	Job         *Job   `json:"job,omitempty"`
	Title       string `json:"title,omitempty"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
	CompanyLogo string `json:"company_logo,omitempty"`
	JobType     string `json:"jobType,omitempty"`
	Category    string `json:"category,omitempty"`
	SalaryRange string `json:"salaryRange,omitempty"`
}
