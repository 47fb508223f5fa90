package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope forma de toda respuesta de la API: exactamente uno de Data o Error es no nulo.
// En listados Data es siempre un arreglo (vacío si no hay resultados).
type Envelope struct {
	Data  any            `json:"data"`
	Error *ErrorResponse `json:"error"`
}

// StatusUpdateRequest cuerpo de PATCH /api/orders/{id}/status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// HealthResponse cuerpo de GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Remote  string `json:"remote"` // configured | not_configured
}
