package dtos

// JobCreationRequest is the body of POST /jobs. It is checked against the
// job JSON schema before binding.
type JobCreationRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanyLogo string `json:"company_logo"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Description string `json:"description"`
	JobType     string `json:"jobType"`
	SalaryRange string `json:"salaryRange"`
	PostedBy    string `json:"postedBy"`
	Status      string `json:"status"` // Defaults to "active" if empty
	IsFeatured  bool   `json:"isFeatured"`
}

type JobCreationResponse struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// PageQuery is the query string of GET /jobs/all.
type PageQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=20" binding:"min=1,max=100"`
}

type EmailQuery struct {
	Email string `form:"email" binding:"required"`
}

type SearchQuery struct {
	Q string `form:"q" binding:"required"`
}

type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}
