package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserName string
	Email    string
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
}

// Profile es lo que devuelve el servicio de auth; en login incluye AccessToken.
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken,omitempty"`
}
