package models

type UploadResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Resume  *Resume `json:"resume"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
}

type ListResponse struct {
	Success    bool            `json:"success"`
	Pagination Pagination      `json:"pagination"`
	Resumes    []ResumeSummary `json:"resumes"`
}

type DetailResponse struct {
	Success bool    `json:"success"`
	Resume  *Resume `json:"resume"`
}

type SearchHit struct {
	ResumeID string  `json:"resume_id"`
	Score    float32 `json:"score"`
	Snippet  string  `json:"snippet"`
}

type SearchResponse struct {
	Success bool        `json:"success"`
	Query   string      `json:"query"`
	Results []SearchHit `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
