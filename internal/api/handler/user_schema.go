package handler

// Request and response shapes for the /auth surface. Field names follow the
// wire contract (camelCase), not the internal domain naming.

type registerRequest struct {
	DocumentType   string `json:"documentType"   validate:"required"`
	DocumentNumber string `json:"documentNumber" validate:"required"`
	UserName       string `json:"userName"       validate:"required"`
	Password       string `json:"password"       validate:"required,min=6"`
	Role           string `json:"role"           validate:"required,oneof=USER ADMIN READ WRITE"`
}

type registerResponse struct {
	ID             string `json:"id"`
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	UserName       string `json:"userName"`
	Role           string `json:"role"`
	Enabled        bool   `json:"enabled"`
}

type loginRequest struct {
	UserName string `json:"userName" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string `json:"token"`
}

type tokenData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Enabled  bool   `json:"enabled"`
}

type tokenResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *tokenData `json:"data,omitempty"`
}

type userResponse struct {
	ID             string `json:"id"`
	UserName       string `json:"userName"`
	DocumentNumber string `json:"documentNumber"`
	Enabled        bool   `json:"enabled"`
}
