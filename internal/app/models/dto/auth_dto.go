package dto

// RegisterRequest is the payload for account registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"user@dept.edu"`
	Password  string `json:"password" binding:"required,min=8" example:"s3cretpass"`
	FirstName string `json:"firstName" binding:"required" example:"John"`
	LastName  string `json:"lastName" binding:"required" example:"Doe"`
	Level     string `json:"level" binding:"omitempty,max=32" example:"300"`
}

// LoginRequest is the payload for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@dept.edu"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
}

// LoginResponse is returned after a successful login. Approval status is
// included so the client can explain why dashboard routes are still gated.
type LoginResponse struct {
	Account AccountResponse `json:"account"`
	Tokens  TokenResponse   `json:"tokens"`
}
