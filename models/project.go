package models

// RegisterProjectRequest connects a dashboard project's database so reports
// can run against it.
type RegisterProjectRequest struct {
	ProjectId   string `json:"project_id"`
	DatabaseURL string `json:"database_url"`
}

type DeregisterProjectRequest struct {
	ProjectId string `json:"project_id"`
}
