package dto

// AssistantContextResponse carries the assembled prompt context block
type AssistantContextResponse struct {
	Context string `json:"context"`
}
