package health

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Success bool   `json:"success"`
	Status  string `json:"status" example:"OK" doc:"Состояние сервиса"`
}
