package mapping

import (
	"github.com/opsdesk/caseflow_app/internal/core/domain"
	"github.com/opsdesk/caseflow_app/internal/models"
)

// ToModelCase converts a domain Case to its database row shape.
func ToModelCase(d domain.Case) models.Case {
	return models.Case{
		CaseID:                 d.CaseID,
		Name:                   d.Name,
		Beneficiary:            d.Beneficiary,
		Domiciliation:          d.Domiciliation,
		CurrencyCode:           d.CurrencyCode,
		Amount:                 d.Amount,
		Reason:                 d.Reason,
		PhysicalDepositDate:    d.PhysicalDepositDate,
		SystemRegistrationDate: d.SystemRegistrationDate,
		Status:                 string(d.Status),
		AssignedOfficerID:      d.AssignedOfficerID,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCase converts a model Case to a domain Case. Documents and audit
// entries are attached separately by the repository.
func ToDomainCase(m models.Case) domain.Case {
	return domain.Case{
		CaseID:                 m.CaseID,
		Name:                   m.Name,
		Beneficiary:            m.Beneficiary,
		Domiciliation:          m.Domiciliation,
		CurrencyCode:           m.CurrencyCode,
		Amount:                 m.Amount,
		Reason:                 m.Reason,
		PhysicalDepositDate:    m.PhysicalDepositDate,
		SystemRegistrationDate: m.SystemRegistrationDate,
		Status:                 domain.CaseStatus(m.Status),
		AssignedOfficerID:      m.AssignedOfficerID,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCaseSlice converts a slice of model Cases to domain Cases.
func ToDomainCaseSlice(ms []models.Case) []domain.Case {
	ds := make([]domain.Case, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCase(m)
	}
	return ds
}

// ToModelCaseDocument converts a domain Document to its database row shape.
func ToModelCaseDocument(d domain.Document) models.CaseDocument {
	return models.CaseDocument{
		DocumentID:  d.DocumentID,
		CaseID:      d.CaseID,
		FileName:    d.FileName,
		FileType:    d.FileType,
		StoragePath: d.StoragePath,
		UploadedAt:  d.UploadedAt,
		UploadedBy:  d.UploadedBy,
	}
}

// ToDomainCaseDocument converts a model CaseDocument to a domain Document.
func ToDomainCaseDocument(m models.CaseDocument) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		CaseID:      m.CaseID,
		FileName:    m.FileName,
		FileType:    m.FileType,
		StoragePath: m.StoragePath,
		UploadedAt:  m.UploadedAt,
		UploadedBy:  m.UploadedBy,
	}
}

// ToDomainCaseDocumentSlice converts model documents to domain documents.
func ToDomainCaseDocumentSlice(ms []models.CaseDocument) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCaseDocument(m)
	}
	return ds
}

// ToModelCaseAuditEntry converts a domain AuditEntry to its database row shape.
func ToModelCaseAuditEntry(d domain.AuditEntry) models.CaseAuditEntry {
	return models.CaseAuditEntry{
		EntryID:   d.EntryID,
		CaseID:    d.CaseID,
		ActorID:   d.ActorID,
		ActorRole: string(d.ActorRole),
		Action:    string(d.Action),
		Comment:   d.Comment,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainCaseAuditEntry converts a model CaseAuditEntry to a domain AuditEntry.
func ToDomainCaseAuditEntry(m models.CaseAuditEntry) domain.AuditEntry {
	return domain.AuditEntry{
		EntryID:   m.EntryID,
		CaseID:    m.CaseID,
		ActorID:   m.ActorID,
		ActorRole: domain.Role(m.ActorRole),
		Action:    domain.AuditAction(m.Action),
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainCaseAuditEntrySlice converts model audit entries to domain entries.
func ToDomainCaseAuditEntrySlice(ms []models.CaseAuditEntry) []domain.AuditEntry {
	ds := make([]domain.AuditEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCaseAuditEntry(m)
	}
	return ds
}
