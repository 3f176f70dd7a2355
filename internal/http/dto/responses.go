package dto

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type PurgeResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type RestoreResponse struct {
	RestoredCollections []string `json:"restoredCollections"`
	ClearExisting       bool     `json:"clearExisting"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
