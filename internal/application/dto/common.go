package dto

// PageResponse metadatos de paginación que acompañan a los listados.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo uniforme de error HTTP: un código estable para el
// cliente y un mensaje legible.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
