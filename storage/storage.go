package storage

import (
	"context"

	"ucode/ucode_go_report_builder_service/models"
)

type StorageI interface {
	Project() ProjectRepoI
	Report() ReportRepoI
	SavedQuery() SavedQueryRepoI
	Export() ExportRepoI
	CloseDB()
}

type ProjectRepoI interface {
	Register(ctx context.Context, req *models.RegisterProjectRequest) error
	Deregister(ctx context.Context, req *models.DeregisterProjectRequest) error
}

type ReportRepoI interface {
	BuildQuery(ctx context.Context, req *models.RunReportRequest) (*models.BuildQueryResponse, error)
	Run(ctx context.Context, req *models.RunReportRequest) (*models.RunReportResponse, error)
}

type SavedQueryRepoI interface {
	Create(ctx context.Context, req *models.SavedQuery) (*models.SavedQuery, error)
	GetByID(ctx context.Context, req *models.SavedQueryPrimaryKey) (*models.SavedQuery, error)
	GetAll(ctx context.Context, req *models.GetAllSavedQueriesRequest) (*models.GetAllSavedQueriesResponse, error)
	Update(ctx context.Context, req *models.SavedQuery) (*models.SavedQuery, error)
	Delete(ctx context.Context, req *models.SavedQueryPrimaryKey) error
}

type ExportRepoI interface {
	ExportExcel(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error)
	ExportCSV(ctx context.Context, req *models.ExportRequest) (*models.ExportResponse, error)
}
