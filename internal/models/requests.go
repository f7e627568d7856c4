package models

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
}

type CreateJobDescriptionRequest struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company"`
	Description string `json:"description" validate:"required"`
}

type AnalyzeRequest struct {
	ResumeID         string `json:"resume_id" validate:"required,uuid"`
	JobDescriptionID string `json:"job_description_id" validate:"required,uuid"`
}

type AnalyzeResponse struct {
	Analysis *Analysis      `json:"analysis"`
	Result   AnalysisResult `json:"result"`
}

type UploadResponse struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	FileSize  int64  `json:"file_size"`
	TextChars int    `json:"text_chars"`
	Archived  bool   `json:"archived"`
}

type SimilarJobDescription struct {
	JobDescription *JobDescription `json:"job_description"`
	Score          float32         `json:"score"`
}
