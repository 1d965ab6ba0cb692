package askapi

import "encoding/json"

// Model identifiers accepted by the answer service
const (
	ModelLLM    = "llm"
	ModelGemini = "gemini"
)

// ModelLabel returns the display name for a model identifier
func ModelLabel(model string) string {
	switch model {
	case ModelGemini:
		return "Gemini"
	default:
		return "LLM"
	}
}

// AskRequest represents a question sent to the answer service
type AskRequest struct {
	Question string `json:"question"`
	Model    string `json:"model"`
}

// Answer represents a successful answer-service response. Citations is kept
// raw because the service makes no shape guarantees beyond "some JSON value";
// the citation package normalizes it.
type Answer struct {
	Answer    string          `json:"answer"`
	Citations json.RawMessage `json:"citations"`
}
