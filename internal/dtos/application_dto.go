package dtos

import "github.com/Mim-rose/nexthire-server/internal/models"

// ApplicationSubmission holds the text fields of the multipart
// POST /job-applications form. Resume and cover letter files are read
// separately; only their original filenames are kept.
type ApplicationSubmission struct {
	JobID             string `form:"job_id" binding:"required"`
	ApplicantEmail    string `form:"applicant_email" binding:"required"`
	ApplicantName     string `form:"applicant_name"`
	ApplicantPhone    string `form:"applicant_phone"`
	ApplicantLinkedIn string `form:"applicant_linkedin"`
	ApplicantNotes    string `form:"applicant_notes"`

	ResumeFilename      string `form:"-"`
	CoverLetterFilename string `form:"-"`
}

type ApplicationSubmissionResponse struct {
	InsertedID string      `json:"insertedId"`
	JobDetails *models.Job `json:"jobDetails"`
}

type DeleteApplicationResponse struct {
	Success      bool  `json:"success"`
	DeletedCount int64 `json:"deletedCount"`
}
