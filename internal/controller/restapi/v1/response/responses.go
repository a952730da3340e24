package response

type Queued struct {
	Status    string `json:"status"`
	RequestID string `json:"requestId"`
}

type Error struct {
	Error string `json:"error"`
}
