package ports

import "github.com/aalvaropc/brcstream/internal/domain"

// ReportStore persists final reports for later inspection.
type ReportStore interface {
	SaveReport(report domain.ReportArtifact) (id string, err error)
}

// ReportCatalog lists and loads stored reports.
type ReportCatalog interface {
	ListReports() ([]domain.ReportRef, error)
	LoadReport(id string) (domain.ReportArtifact, error)
}
