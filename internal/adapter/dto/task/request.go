package task

// SubmitSolutionRequest represents an employee submission against a task
type SubmitSolutionRequest struct {
	Note    string  `json:"note" form:"note" validate:"max=10000"`
	FileKey *string `json:"file_key,omitempty" form:"file_key"`
}
