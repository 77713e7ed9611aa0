package dto

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

type TokenDTO struct {
	Token string `json:"token"`
}
