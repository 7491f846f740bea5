package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP. Error repite Message para clientes que leen "error".
// AllowedTypes se envía en violaciones de jerarquía, incluso vacío.
type ErrorResponse struct {
	Error        string    `json:"error"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
	AllowedTypes *[]string `json:"allowedTypes,omitempty"`
	Details      any       `json:"details,omitempty"`
}

// NewError arma un ErrorResponse con Error y Message iguales.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: message, Code: code, Message: message}
}

// PageResponse metadatos de paginación en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
