package httpapi

type Meta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ListResponse is one page of a collection. Data is never null.
type ListResponse[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

func NewListResponse[T any](items []T, total, limit, offset int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Meta: Meta{Total: total, Limit: limit, Offset: offset}}
}

type ErrorBody struct {
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

const (
	HealthOK           = "ok"
	HealthDegraded     = "degraded"
	HealthConnected    = "connected"
	HealthDisconnected = "disconnected"
)

type HealthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}
