package auditlog

import (
	"log"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type Auditlog struct {
	r *repository.Repository
}

// Auditable is implemented by domain records that leave an audit trail.
type Auditable interface {
	CreateLogView() models.AuditLog
}

func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	if a == nil {
		return
	}

	auditLog := item.CreateLogView()
	auditLog.Action = action

	if err := a.r.PersistLog(auditLog, data); err != nil {
		log.Println("Unable to create AuditLog entry for id ", auditLog.ResourceID)
		return
	}

	log.Println("Created AuditLog entry for id ", auditLog.ResourceID)
}

func (a *Auditlog) ResourceLog(id int, resourceType string) ([]models.AuditLog, error) {
	return a.r.GetResourceLog(id, resourceType)
}

func NewAuditLog(repository *repository.Repository) *Auditlog {
	return &Auditlog{r: repository}
}
