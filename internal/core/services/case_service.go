package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/opsdesk/caseflow_app/internal/apperrors"
	"github.com/opsdesk/caseflow_app/internal/core/domain"
	portsrepo "github.com/opsdesk/caseflow_app/internal/core/ports/repositories"
	portssvc "github.com/opsdesk/caseflow_app/internal/core/ports/services"
	"github.com/opsdesk/caseflow_app/internal/core/workflow"
	"github.com/opsdesk/caseflow_app/internal/dto"
	"github.com/opsdesk/caseflow_app/internal/middleware"
)

var (
	// ErrInvalidTarget means the named forward target is not a treasury officer on the roster.
	ErrInvalidTarget = fmt.Errorf("%w: target treasury officer does not exist", apperrors.ErrNotFound)
	// ErrNotCaseCreator means an actor other than the creating agent tried to edit the case.
	ErrNotCaseCreator = fmt.Errorf("%w: only the creating agent may modify this case", apperrors.ErrForbidden)
	// ErrCaseNotEditable means the case already left the creating role's hands.
	ErrCaseNotEditable = fmt.Errorf("%w: case details may only be changed before submission", apperrors.ErrInvalidTransition)
	// ErrAmountNotPositive rejects zero or negative deposit amounts.
	ErrAmountNotPositive = fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
)

// caseService is the workflow engine: the only component that reads and
// writes case status. Every transition is decided by the workflow policy,
// applied to the entity, and paired with exactly one audit entry, persisted
// as a single unit.
type caseService struct {
	caseRepo     portsrepo.CaseRepositoryWithTx
	userRepo     portsrepo.UserRepository
	storeTimeout time.Duration
}

// NewCaseService creates the workflow engine over the given repositories.
// storeTimeout bounds every round trip to the case store; a deadline is
// surfaced as a retryable Unavailable error, never a half-applied transition.
func NewCaseService(caseRepo portsrepo.CaseRepositoryWithTx, userRepo portsrepo.UserRepository, storeTimeout time.Duration) portssvc.CaseSvcFacade {
	return &caseService{
		caseRepo:     caseRepo,
		userRepo:     userRepo,
		storeTimeout: storeTimeout,
	}
}

var _ portssvc.CaseSvcFacade = (*caseService)(nil)

// storeCtx bounds a collaborator round trip.
func (s *caseService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.storeTimeout)
}

// mapStoreErr translates a collaborator deadline into the retryable taxonomy.
func mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: case store timed out", apperrors.ErrUnavailable)
	}
	return err
}

// CreateCase opens a new case in state created and writes the creation
// audit entry atomically with the insert.
func (s *caseService) CreateCase(ctx context.Context, actor domain.Identity, req dto.CreateCaseRequest) (*domain.Case, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if actor.Role != domain.RoleAgentOPS {
		logger.Warn("Non-agent attempted to create a case", slog.String("actor_role", string(actor.Role)))
		return nil, fmt.Errorf("%w: only Agent OPS may create cases", apperrors.ErrRoleNotPermitted)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}

	now := time.Now().UTC()
	kase := domain.Case{
		CaseID:                 uuid.NewString(),
		Name:                   req.Name,
		Beneficiary:            req.Beneficiary,
		Domiciliation:          req.Domiciliation,
		CurrencyCode:           strings.ToUpper(req.CurrencyCode),
		Amount:                 req.Amount,
		Reason:                 req.Reason,
		PhysicalDepositDate:    req.PhysicalDepositDate,
		SystemRegistrationDate: now,
		Status:                 domain.StatusCreated,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
			Version:       1,
		},
	}
	entry := domain.AuditEntry{
		EntryID:   uuid.NewString(),
		CaseID:    kase.CaseID,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		Action:    domain.AuditCreated,
		CreatedAt: now,
	}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.caseRepo.CreateCaseWithAudit(cctx, kase, entry); err != nil {
		logger.Error("Failed to create case", slog.String("error", err.Error()))
		return nil, mapStoreErr(err)
	}

	kase.Comments = []domain.AuditEntry{entry}
	logger.Info("Case created", slog.String("case_id", kase.CaseID))
	return &kase, nil
}

// ApplyAction runs one workflow transition end to end:
// load, decide, mutate, append audit, persist -- all or nothing.
// A denied action never touches the case or the ledger.
func (s *caseService) ApplyAction(ctx context.Context, caseID string, actor domain.Identity, req dto.CaseActionRequest) (*domain.Case, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kase, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	priorStatus := kase.Status
	expectedVersion := kase.Version

	payload := workflow.Payload{Comment: req.Comment, TargetOfficerID: req.TargetOfficerID}
	tr, err := workflow.Decide(actor.Role, kase.Status, req.Action, payload)
	if err != nil {
		logger.Warn("Workflow action denied",
			slog.String("case_id", caseID),
			slog.String("actor_role", string(actor.Role)),
			slog.String("status", string(kase.Status)),
			slog.String("action", string(req.Action)),
			slog.String("reason", err.Error()))
		return nil, err
	}

	targetOfficerID := strings.TrimSpace(req.TargetOfficerID)
	if tr.RequiresOfficer {
		if err := s.validateOfficerTarget(ctx, targetOfficerID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	entry := domain.AuditEntry{
		EntryID:   uuid.NewString(),
		CaseID:    kase.CaseID,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		Action:    tr.Audit,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: now,
	}

	if tr.Removes {
		cctx, cancel := s.storeCtx(ctx)
		defer cancel()
		if err := s.caseRepo.DeleteCase(cctx, kase.CaseID, expectedVersion); err != nil {
			return nil, s.resolveWriteFailure(ctx, kase.CaseID, priorStatus, err)
		}
		logger.Info("Case deleted",
			slog.String("case_id", kase.CaseID),
			slog.String("actor_id", actor.UserID))
		return kase, nil
	}

	kase.Status = tr.To
	if tr.AssignsOfficer {
		kase.AssignedOfficerID = &targetOfficerID
	}
	if tr.ClearsOfficer {
		kase.AssignedOfficerID = nil
	}
	kase.LastUpdatedAt = now
	kase.LastUpdatedBy = actor.UserID

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.caseRepo.SaveCaseWithAudit(cctx, *kase, entry, expectedVersion); err != nil {
		return nil, s.resolveWriteFailure(ctx, kase.CaseID, priorStatus, err)
	}

	kase.Version = expectedVersion + 1
	kase.Comments = append(kase.Comments, entry)
	logger.Info("Workflow action applied",
		slog.String("case_id", kase.CaseID),
		slog.String("action", string(req.Action)),
		slog.String("from", string(priorStatus)),
		slog.String("to", string(kase.Status)))
	return kase, nil
}

// UpdateCaseDetails rewrites descriptive fields while the case is still with
// its creating agent. Status and ledger are untouched.
func (s *caseService) UpdateCaseDetails(ctx context.Context, caseID string, actor domain.Identity, req dto.UpdateCaseRequest) (*domain.Case, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kase, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if kase.CreatedBy != actor.UserID || actor.Role != domain.RoleAgentOPS {
		return nil, ErrNotCaseCreator
	}
	if !kase.Editable() {
		return nil, ErrCaseNotEditable
	}

	updated := false
	if req.Name != nil {
		kase.Name = *req.Name
		updated = true
	}
	if req.Beneficiary != nil {
		kase.Beneficiary = *req.Beneficiary
		updated = true
	}
	if req.Domiciliation != nil {
		kase.Domiciliation = *req.Domiciliation
		updated = true
	}
	if req.CurrencyCode != nil {
		kase.CurrencyCode = strings.ToUpper(*req.CurrencyCode)
		updated = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrAmountNotPositive
		}
		kase.Amount = *req.Amount
		updated = true
	}
	if req.Reason != nil {
		kase.Reason = *req.Reason
		updated = true
	}
	if req.PhysicalDepositDate != nil {
		kase.PhysicalDepositDate = *req.PhysicalDepositDate
		updated = true
	}
	if !updated {
		return kase, nil
	}

	expectedVersion := kase.Version
	kase.LastUpdatedAt = time.Now().UTC()
	kase.LastUpdatedBy = actor.UserID

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.caseRepo.UpdateCaseDetails(cctx, *kase, expectedVersion); err != nil {
		return nil, s.resolveWriteFailure(ctx, kase.CaseID, kase.Status, err)
	}
	kase.Version = expectedVersion + 1

	logger.Info("Case details updated", slog.String("case_id", kase.CaseID))
	return kase, nil
}

// AddDocument appends document metadata. Documents are append-only for the
// life of the case; removal is not modeled.
func (s *caseService) AddDocument(ctx context.Context, caseID string, actor domain.Identity, req dto.AddDocumentRequest) (*domain.Case, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	kase, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if kase.CreatedBy != actor.UserID || actor.Role != domain.RoleAgentOPS {
		return nil, ErrNotCaseCreator
	}
	if !kase.Editable() {
		return nil, ErrCaseNotEditable
	}

	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		CaseID:      kase.CaseID,
		FileName:    req.FileName,
		FileType:    req.FileType,
		StoragePath: req.StoragePath,
		UploadedAt:  time.Now().UTC(),
		UploadedBy:  actor.UserID,
	}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.caseRepo.AddDocument(cctx, doc); err != nil {
		logger.Error("Failed to attach document", slog.String("case_id", kase.CaseID), slog.String("error", err.Error()))
		return nil, mapStoreErr(err)
	}

	kase.Documents = append(kase.Documents, doc)
	logger.Info("Document attached", slog.String("case_id", kase.CaseID), slog.String("document_id", doc.DocumentID))
	return kase, nil
}

// GetCase returns a case under the same visibility rules as the role queues.
// An existing but invisible case reads as not found.
func (s *caseService) GetCase(ctx context.Context, caseID string, actor domain.Identity) (*domain.Case, error) {
	kase, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if !caseVisibleTo(actor, kase) {
		return nil, apperrors.ErrNotFound
	}
	return kase, nil
}

// ListForRole is a filtered projection of the store: each role sees exactly
// its queue, derived from status plus assignment and nothing else.
func (s *caseService) ListForRole(ctx context.Context, actor domain.Identity, params dto.ListCasesParams) (*dto.ListCasesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.CaseFilter{
		Limit:     params.Limit,
		NextToken: params.NextToken,
	}
	switch actor.Role {
	case domain.RoleAgentOPS:
		filter.CreatedBy = actor.UserID
	case domain.RoleTreasuryOPS:
		filter.Statuses = []domain.CaseStatus{domain.StatusWaiting}
	case domain.RoleTreasuryOfficer:
		filter.AssignedOfficerID = actor.UserID
		filter.Statuses = []domain.CaseStatus{domain.StatusForwardedOfficer}
	case domain.RoleTradeDesk:
		filter.Statuses = []domain.CaseStatus{domain.StatusForwardedTradeDesk}
		if params.IncludeCompleted {
			filter.Statuses = append(filter.Statuses, domain.StatusCompleted)
		}
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrForbidden, actor.Role)
	}

	cctx, cancel := s.storeCtx(ctx)
	defer cancel()
	cases, nextToken, err := s.caseRepo.ListCases(cctx, filter)
	if err != nil {
		logger.Error("Failed to list cases", slog.String("error", err.Error()))
		return nil, mapStoreErr(err)
	}

	resp := dto.ToListCasesResponse(cases, nextToken)
	logger.Debug("Cases listed", slog.Int("count", len(cases)), slog.String("role", string(actor.Role)))
	return &resp, nil
}

func (s *caseService) loadCase(ctx context.Context, caseID string) (*domain.Case, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	kase, err := s.caseRepo.FindCaseByID(cctx, caseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load case", slog.String("case_id", caseID), slog.String("error", err.Error()))
		}
		return nil, mapStoreErr(err)
	}
	return kase, nil
}

// validateOfficerTarget checks the forward target against the roster before
// any mutation happens.
func (s *caseService) validateOfficerTarget(ctx context.Context, officerID string) error {
	cctx, cancel := s.storeCtx(ctx)
	defer cancel()

	officer, err := s.userRepo.FindUserByID(cctx, officerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return ErrInvalidTarget
		}
		return mapStoreErr(err)
	}
	if officer.Role != domain.RoleTreasuryOfficer {
		return ErrInvalidTarget
	}
	return nil
}

// resolveWriteFailure classifies a failed conditional write. When the version
// check lost a race, the case is re-read: a moved status means the request no
// longer applies (InvalidTransition); an unchanged status means plain lock
// contention (Conflict, retryable).
func (s *caseService) resolveWriteFailure(ctx context.Context, caseID string, priorStatus domain.CaseStatus, err error) error {
	if !errors.Is(err, apperrors.ErrConflict) {
		return mapStoreErr(err)
	}

	current, loadErr := s.loadCase(ctx, caseID)
	if loadErr != nil {
		if errors.Is(loadErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return loadErr
	}
	if current.Status != priorStatus {
		return fmt.Errorf("%w: case moved from %s to %s", apperrors.ErrInvalidTransition, priorStatus, current.Status)
	}
	return fmt.Errorf("%w: concurrent update on case %s", apperrors.ErrConflict, caseID)
}

func caseVisibleTo(actor domain.Identity, kase *domain.Case) bool {
	switch actor.Role {
	case domain.RoleAgentOPS:
		return kase.CreatedBy == actor.UserID
	case domain.RoleTreasuryOPS:
		return kase.Status == domain.StatusWaiting
	case domain.RoleTreasuryOfficer:
		return kase.AssignedOfficerID != nil && *kase.AssignedOfficerID == actor.UserID
	case domain.RoleTradeDesk:
		return kase.Status == domain.StatusForwardedTradeDesk || kase.Status == domain.StatusCompleted
	}
	return false
}
