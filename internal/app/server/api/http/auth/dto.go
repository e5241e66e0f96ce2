package auth

type loginInput struct {
	Body loginRequest
}

type loginRequest struct {
	Email    string `json:"email" doc:"Email администратора" minLength:"1"`
	Password string `json:"password" doc:"Пароль" minLength:"1"`
}

type loginOutput struct {
	Body loginResponse
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	Admin   adminProfile `json:"admin"`
}

type adminProfile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type logoutInput struct {
	Authorization string `header:"Authorization"`
}

type logoutOutput struct {
	Body logoutResponse
}

type logoutResponse struct {
	Success bool `json:"success"`
}
