package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ProcessResponse struct {
	Files      []string `json:"files"`
	Characters int      `json:"characters"`
	Chunks     int      `json:"chunks"`
	BuildID    string   `json:"build_id,omitempty"`
}

type AskResponse struct {
	Question string         `json:"question"`
	Reply    string         `json:"reply"`
	Sources  []SearchResult `json:"sources"`
}

type StatusResponse struct {
	State           string `json:"state"`
	QuestionEnabled bool   `json:"question_enabled"`
}
