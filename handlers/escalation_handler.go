package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/civicledger/grievance-chaincode/config"
	"github.com/civicledger/grievance-chaincode/domain"
	"github.com/civicledger/grievance-chaincode/services"
	"github.com/civicledger/grievance-chaincode/utils"
)

// systemActor attributes escalation writes that no human initiated.
const systemActor = "system"

// EscalationHandler handles escalation evaluation operations
type EscalationHandler struct {
	persistenceService *services.PersistenceService
	eventService       *services.EventService
	complaints         *ComplaintHandler
}

// NewEscalationHandler creates a new escalation handler
func NewEscalationHandler() *EscalationHandler {
	return &EscalationHandler{
		persistenceService: services.NewPersistenceService(),
		eventService:       services.NewEventService(),
		complaints:         NewComplaintHandler(),
	}
}

// EvaluationRequest identifies the complaint to evaluate.
type EvaluationRequest struct {
	ComplaintID string `json:"complaintID"`
	ActorID     string `json:"actorID,omitempty"`
}

// EvaluateEscalation runs the escalation rules against one complaint at the
// transaction timestamp and persists any level change. Concurrent evaluations
// of the same complaint are serialized by the ledger's read-set validation:
// the losing transaction is invalidated and can simply be retried.
func (h *EscalationHandler) EvaluateEscalation(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}

	var req EvaluationRequest
	if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation request: %v", err)
	}
	if req.ActorID == "" {
		req.ActorID = systemActor
	}

	complaint, err := h.complaints.loadComplaint(stub, req.ComplaintID)
	if err != nil {
		return nil, err
	}

	now, err := utils.TxTime(stub)
	if err != nil {
		return nil, err
	}

	eval := domain.Evaluate(complaint, now)

	if len(eval.Transitions) > 0 {
		if err := h.applyEscalation(stub, complaint, eval, req.ActorID); err != nil {
			return nil, err
		}
		if err := h.eventService.EmitComplaintEscalated(stub, complaint, eval.Transitions, req.ActorID, now); err != nil {
			return nil, fmt.Errorf("failed to emit event: %v", err)
		}
	}

	return json.Marshal(eval)
}

// SweepRequest carries the optional actor attribution for a sweep.
type SweepRequest struct {
	ActorID string `json:"actorID,omitempty"`
}

// SweepResult summarizes one escalation sweep over the open complaints.
type SweepResult struct {
	SweepID     string              `json:"sweepID"`
	Evaluated   int                 `json:"evaluated"`
	Escalated   int                 `json:"escalated"`
	Transitions []domain.Transition `json:"transitions,omitempty"`
}

// RunEscalationSweep evaluates every open complaint in one transaction.
// Resolved complaints are never touched, so the sweep's read set stays
// bounded by the open backlog. The sweep is idempotent: a second run at the
// same timestamp finds every level already current and writes nothing.
func (h *EscalationHandler) RunEscalationSweep(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 0 or 1, got %d", len(args))
	}

	var req SweepRequest
	if len(args) == 1 && args[0] != "" {
		if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
			return nil, fmt.Errorf("failed to parse sweep request: %v", err)
		}
	}
	if req.ActorID == "" {
		req.ActorID = systemActor
	}

	now, err := utils.TxTime(stub)
	if err != nil {
		return nil, err
	}

	openComplaints, err := h.complaints.loadComplaintsByIndex(stub, config.IndexComplaintByStatus, string(domain.StatusOpen))
	if err != nil {
		return nil, err
	}

	result := SweepResult{
		SweepID:   utils.DerivedID("SWEEP", stub.GetTxID()),
		Evaluated: len(openComplaints),
	}

	for i := range openComplaints {
		complaint := &openComplaints[i]

		eval := domain.Evaluate(complaint, now)
		if len(eval.Transitions) == 0 {
			continue
		}

		if err := h.applyEscalation(stub, complaint, eval, req.ActorID); err != nil {
			return nil, err
		}

		result.Escalated++
		result.Transitions = append(result.Transitions, eval.Transitions...)
	}

	if err := h.eventService.EmitEscalationSweep(stub, result.SweepID, result.Transitions, req.ActorID, now); err != nil {
		return nil, fmt.Errorf("failed to emit event: %v", err)
	}

	return json.Marshal(result)
}

// applyEscalation persists a level change and records one timeline entry per
// level step crossed.
func (h *EscalationHandler) applyEscalation(stub shim.ChaincodeStubInterface, complaint *domain.Complaint, eval domain.Evaluation, actorID string) error {
	complaint.EscalationLevel = eval.Level

	if err := h.persistenceService.Put(stub, complaintKey(complaint.ComplaintID), complaint); err != nil {
		return fmt.Errorf("failed to update complaint %s: %v", complaint.ComplaintID, err)
	}

	for _, transition := range eval.Transitions {
		detail := fmt.Sprintf("Escalated to level %d, notifying %s", transition.ToLevel, transition.NotifyTarget)
		action := fmt.Sprintf("ESCALATED_L%d", transition.ToLevel)
		if err := h.complaints.recordHistory(stub, complaint.ComplaintID, action, actorID, detail, transition.TriggeredAt); err != nil {
			return err
		}
	}

	return nil
}
