package auth

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type UserDTO struct {
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginDTO tells the client a code is on its way.
type LoginDTO struct {
	Message          string `json:"message"`
	UserID           uint64 `json:"user_id"`
	Username         string `json:"username"`
	Role             string `json:"role"`
	OTPExpiresInSecs int64  `json:"otp_expires_in"`
}

type AuthDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	UserID       uint64 `json:"user_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}
