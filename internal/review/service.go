package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jmallard/countersign/internal/audit"
	"github.com/jmallard/countersign/internal/documents"
	"github.com/jmallard/countersign/internal/evidence"
	"github.com/jmallard/countersign/internal/ledger"
	"github.com/jmallard/countersign/internal/match"
	"github.com/jmallard/countersign/internal/signature"
	"github.com/jmallard/countersign/pkg/locks"
	"github.com/jmallard/countersign/pkg/pagination"
	"github.com/jmallard/countersign/pkg/storage"
)

type service struct {
	documents  documents.System
	evidence   evidence.System
	storage    storage.System
	verifier   signature.Verifier
	anchorer   ledger.Anchorer
	audit      audit.System
	locks      locks.Locker
	logger     *slog.Logger
	pagination pagination.Config
}

// New assembles the review pipeline from its collaborators.
func New(
	docs documents.System,
	ev evidence.System,
	store storage.System,
	verifier signature.Verifier,
	anchorer ledger.Anchorer,
	trail audit.System,
	locker locks.Locker,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &service{
		documents:  docs,
		evidence:   ev,
		storage:    store,
		verifier:   verifier,
		anchorer:   anchorer,
		audit:      trail,
		locks:      locker,
		logger:     logger.With("system", "review"),
		pagination: pagination,
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger, s.pagination)
}

func (s *service) Queue(
	ctx context.Context,
	page pagination.PageRequest,
) (*pagination.PageResult[QueueItem], error) {
	status := string(documents.StatusPendingReview)
	result, err := s.documents.List(ctx, page, documents.Filters{Status: &status})
	if err != nil {
		return nil, err
	}

	items := make([]QueueItem, len(result.Data))
	for i, doc := range result.Data {
		items[i] = QueueItem{
			Document: doc,
			Risk:     match.ClassifyRisk(doc.AIInsights.QualityScore),
		}
	}

	queue := pagination.PageResult[QueueItem]{
		Data:       items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
	return &queue, nil
}

func (s *service) Summary(ctx context.Context, id uuid.UUID) (*Summary, error) {
	doc, err := s.documents.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		order    *evidence.Order
		standard *evidence.MasterStandard
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = s.evidence.FindOrder(gctx, doc.OrderID)
		return err
	})
	g.Go(func() error {
		std, err := s.evidence.FindApprovedStandard(gctx, doc.ProductID, string(doc.DocType))
		if errors.Is(err, evidence.ErrNoStandard) {
			return nil
		}
		standard = std
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := match.Evaluate(*doc, *order, standard)
	summary := Summary{
		Document: *doc,
		Order: &OrderContext{
			ID:          order.ID,
			OrderNumber: order.OrderNumber,
			ProductID:   order.ProductID,
		},
		Match: &result,
	}
	if standard != nil {
		summary.Standard = &StandardContext{
			ID:    standard.ID,
			Title: standard.Title,
		}
	}
	return &summary, nil
}

func (s *service) Approve(ctx context.Context, cmd ApproveCommand) (*Decision, error) {
	if cmd.Reviewer == "" {
		return nil, fmt.Errorf("%w: reviewer identity required", ErrValidation)
	}
	if cmd.Credential == "" {
		return nil, signature.ErrEmptyCredential
	}

	// The lock covers every stage, not just the final write; a second
	// decision for the same document fails fast while this one is in flight.
	release, err := s.locks.Acquire(ctx, cmd.DocumentID.String())
	if err != nil {
		if errors.Is(err, locks.ErrHeld) {
			return nil, ErrDecisionInFlight
		}
		return nil, err
	}
	defer release()

	doc, err := s.documents.Find(ctx, cmd.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != documents.StatusPendingReview {
		return nil, documents.ErrInvalidTransition
	}

	fp, err := fingerprint(ctx, s.storage, doc.StorageKey, doc.ContentType)
	if err != nil {
		return nil, err
	}

	proof, err := s.verifier.Verify(ctx, cmd.Reviewer, cmd.Credential, fp)
	if err != nil {
		return nil, err
	}

	anchorRef, err := s.anchorer.Anchor(ctx, fp)
	if err != nil {
		return nil, err
	}

	updated, err := s.documents.Transition(ctx, cmd.DocumentID, documents.TransitionCommand{
		From:        documents.StatusPendingReview,
		To:          documents.StatusApproved,
		ReviewedBy:  cmd.Reviewer,
		Comments:    cmd.Comments,
		Fingerprint: fp,
		AnchorRef:   anchorRef,
	})
	if err != nil {
		return nil, err
	}

	decision := &Decision{
		Document:    *updated,
		Outcome:     documents.StatusApproved,
		Reviewer:    cmd.Reviewer,
		Fingerprint: fp,
		AnchorRef:   anchorRef,
		Proof:       proof,
		DecidedAt:   time.Now().UTC(),
	}

	if order, err := s.evidence.FindOrder(ctx, doc.OrderID); err == nil {
		decision.OrderNumber = order.OrderNumber
	}

	s.recordDecision(decision, audit.ActionDocumentApproved, map[string]any{
		"status":      statusChange(documents.StatusPendingReview, documents.StatusApproved),
		"fingerprint": fp,
		"anchor_ref":  anchorRef,
	})

	return decision, nil
}

func (s *service) Reject(ctx context.Context, cmd RejectCommand) (*Decision, error) {
	if cmd.Reviewer == "" {
		return nil, fmt.Errorf("%w: reviewer identity required", ErrValidation)
	}
	if strings.TrimSpace(cmd.Comments) == "" {
		return nil, ErrMissingJustification
	}

	release, err := s.locks.Acquire(ctx, cmd.DocumentID.String())
	if err != nil {
		if errors.Is(err, locks.ErrHeld) {
			return nil, ErrDecisionInFlight
		}
		return nil, err
	}
	defer release()

	doc, err := s.documents.Find(ctx, cmd.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != documents.StatusPendingReview {
		return nil, documents.ErrInvalidTransition
	}

	updated, err := s.documents.Transition(ctx, cmd.DocumentID, documents.TransitionCommand{
		From:       documents.StatusPendingReview,
		To:         documents.StatusRejected,
		ReviewedBy: cmd.Reviewer,
		Comments:   cmd.Comments,
	})
	if err != nil {
		return nil, err
	}

	decision := &Decision{
		Document:  *updated,
		Outcome:   documents.StatusRejected,
		Reviewer:  cmd.Reviewer,
		DecidedAt: time.Now().UTC(),
	}

	if order, err := s.evidence.FindOrder(ctx, doc.OrderID); err == nil {
		decision.OrderNumber = order.OrderNumber
	}

	s.recordDecision(decision, audit.ActionDocumentRejected, map[string]any{
		"status":   statusChange(documents.StatusPendingReview, documents.StatusRejected),
		"comments": cmd.Comments,
	})

	return decision, nil
}

func (s *service) Trail(
	ctx context.Context,
	id uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[audit.Entry], error) {
	return s.audit.List(ctx, audit.EntityDocument, id.String(), page)
}

// recordDecision queues the audit entry for a committed decision. Delivery is
// best-effort: a failure surfaces on the audit failure channel but never
// affects the decision that already committed.
func (s *service) recordDecision(decision *Decision, action string, changes map[string]any) {
	payload, err := json.Marshal(changes)
	if err != nil {
		s.logger.Error("encode audit changes failed", "error", err)
		payload = nil
	}

	s.audit.Record(audit.Entry{
		Action:     action,
		EntityType: audit.EntityDocument,
		EntityID:   decision.Document.ID.String(),
		Actor:      decision.Reviewer,
		Details:    decisionDetails(decision),
		Changes:    payload,
		RecordedAt: decision.DecidedAt,
	})
}

func decisionDetails(d *Decision) string {
	verb := "approved"
	if d.Outcome == documents.StatusRejected {
		verb = "rejected"
	}
	if d.OrderNumber != "" {
		return fmt.Sprintf("document %s %s for order %s", d.Document.Filename, verb, d.OrderNumber)
	}
	return fmt.Sprintf("document %s %s", d.Document.Filename, verb)
}

func statusChange(from, to documents.Status) map[string]string {
	return map[string]string{
		"from": string(from),
		"to":   string(to),
	}
}
