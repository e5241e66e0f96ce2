package resource

type listInput struct {
	Resource string `path:"resource" example:"users" doc:"Имя ресурса"`
}

type itemInput struct {
	Resource string `path:"resource" example:"users" doc:"Имя ресурса"`
	ID       string `path:"id" example:"1" doc:"ID записи"`
}

type createInput struct {
	Resource string `path:"resource" example:"users" doc:"Имя ресурса"`
	Body     map[string]any
}

type updateInput struct {
	Resource string `path:"resource" example:"users" doc:"Имя ресурса"`
	ID       string `path:"id" example:"1" doc:"ID записи"`
	Body     map[string]any
}

// anyOutput - форма ответа зависит от стиля коллекции, поэтому тело
// нетипизированное.
type anyOutput struct {
	Body any
}
