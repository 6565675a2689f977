package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"jdoe"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresIn int      `json:"expiresIn" example:"43200"`
	User      UserInfo `json:"user"`
}

// UserInfo is the public view of a user account
type UserInfo struct {
	ID        int64  `json:"id" example:"1"`
	Username  string `json:"username" example:"jdoe"`
	FirstName string `json:"firstName" example:"John"`
	LastName  string `json:"lastName" example:"Doe"`
	RoleType  string `json:"roleType" example:"STUDENT"`
}
