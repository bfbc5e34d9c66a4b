package handlers

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/civicledger/grievance-chaincode/config"
	"github.com/civicledger/grievance-chaincode/domain"
	"github.com/civicledger/grievance-chaincode/services"
	"github.com/civicledger/grievance-chaincode/utils"
)

// ComplaintHandler handles complaint lifecycle operations
type ComplaintHandler struct {
	persistenceService *services.PersistenceService
	eventService       *services.EventService
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler() *ComplaintHandler {
	return &ComplaintHandler{
		persistenceService: services.NewPersistenceService(),
		eventService:       services.NewEventService(),
	}
}

// SubmitComplaint lodges a new grievance. Routing and the SLA window are
// derived atomically with the write: a stored complaint always carries its
// department, office and deadline.
func (h *ComplaintHandler) SubmitComplaint(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}

	var req domain.SubmissionRequest
	if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
		return nil, fmt.Errorf("failed to parse submission request: %v", err)
	}

	if err := domain.ValidateSubmission(&req); err != nil {
		return nil, fmt.Errorf("validation failed: %v", err)
	}

	now, err := utils.TxTime(stub)
	if err != nil {
		return nil, err
	}

	routing, err := domain.ResolveRouting(req.Category, req.District)
	if err != nil {
		return nil, fmt.Errorf("routing failed: %v", err)
	}

	slaDays, deadline := domain.ComputeDeadline(req.Category, now, req.Emergency)

	complaintID := utils.ComplaintID(config.ComplaintPrefix, stub.GetTxID())
	complaintKey := complaintKey(complaintID)

	exists, err := h.persistenceService.Exists(stub, complaintKey)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("complaint %s already exists", complaintID)
	}

	complaint := &domain.Complaint{
		ComplaintID:        complaintID,
		CitizenName:        req.CitizenName,
		Phone:              req.Phone,
		Email:              req.Email,
		Category:           req.Category,
		District:           req.District,
		Subject:            req.Subject,
		Description:        req.Description,
		Emergency:          req.Emergency,
		AssignedDepartment: routing.Department,
		AssignedOffice:     routing.Office,
		Status:             domain.StatusOpen,
		EscalationLevel:    0,
		SLADays:            slaDays,
		SLADeadline:        deadline,
		CreatedAt:          now,
		CreatedBy:          req.ActorID,
	}

	if err := h.persistenceService.Put(stub, complaintKey, complaint); err != nil {
		return nil, fmt.Errorf("failed to store complaint: %v", err)
	}

	if err := h.putIndex(stub, config.IndexComplaintByStatus, string(complaint.Status), complaintID); err != nil {
		return nil, err
	}
	if err := h.putIndex(stub, config.IndexComplaintByDepartment, complaint.AssignedDepartment, complaintID); err != nil {
		return nil, err
	}
	if err := h.putIndex(stub, config.IndexComplaintByDistrict, complaint.District, complaintID); err != nil {
		return nil, err
	}

	detail := fmt.Sprintf("Routed to %s", routing.Office)
	if err := h.recordHistory(stub, complaintID, "SUBMITTED", req.ActorID, detail, now); err != nil {
		return nil, err
	}

	if err := h.eventService.EmitComplaintSubmitted(stub, complaint, req.ActorID, now); err != nil {
		return nil, fmt.Errorf("failed to emit event: %v", err)
	}

	return json.Marshal(complaint)
}

// GetComplaint retrieves a complaint by ID
func (h *ComplaintHandler) GetComplaint(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}

	complaint, err := h.loadComplaint(stub, args[0])
	if err != nil {
		return nil, err
	}

	return json.Marshal(complaint)
}

// GetComplaintTimeline retrieves the activity timeline for a complaint in
// chronological order.
func (h *ComplaintHandler) GetComplaintTimeline(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}
	complaintID := args[0]

	if _, err := h.loadComplaint(stub, complaintID); err != nil {
		return nil, err
	}

	iterator, err := stub.GetStateByPartialCompositeKey(config.IndexHistory, []string{complaintID})
	if err != nil {
		return nil, fmt.Errorf("failed to get timeline iterator: %v", err)
	}
	defer iterator.Close()

	var timeline []domain.TimelineEntry
	for iterator.HasNext() {
		response, err := iterator.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to iterate timeline: %v", err)
		}

		var entry domain.TimelineEntry
		if err := json.Unmarshal(response.Value, &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal timeline entry: %v", err)
		}
		timeline = append(timeline, entry)
	}

	sort.SliceStable(timeline, func(i, j int) bool {
		if !timeline[i].Timestamp.Equal(timeline[j].Timestamp) {
			return timeline[i].Timestamp.Before(timeline[j].Timestamp)
		}
		return timeline[i].HistoryID < timeline[j].HistoryID
	})

	return json.Marshal(timeline)
}

// AcknowledgementRequest carries an authority's acknowledgement of an
// escalated complaint.
type AcknowledgementRequest struct {
	ComplaintID string `json:"complaintID"`
	Level       int    `json:"level"`
	ActorID     string `json:"actorID"`
}

// AcknowledgeComplaint records that the authority at the given escalation
// level has taken ownership. An acknowledgement at Level 1 inside its response
// window stops further escalation.
func (h *ComplaintHandler) AcknowledgeComplaint(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}

	var req AcknowledgementRequest
	if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
		return nil, fmt.Errorf("failed to parse acknowledgement request: %v", err)
	}
	if req.Level < 1 || req.Level > domain.MaxEscalationLevel {
		return nil, fmt.Errorf("invalid acknowledgement level %d", req.Level)
	}
	if req.ActorID == "" {
		return nil, fmt.Errorf("actorID is required")
	}

	complaint, err := h.loadComplaint(stub, req.ComplaintID)
	if err != nil {
		return nil, err
	}
	if complaint.IsResolved() {
		return nil, fmt.Errorf("complaint %s is already resolved", req.ComplaintID)
	}
	if complaint.AcknowledgedAt(req.Level) != nil {
		return nil, fmt.Errorf("complaint %s already acknowledged at level %d", req.ComplaintID, req.Level)
	}

	now, err := utils.TxTime(stub)
	if err != nil {
		return nil, err
	}

	complaint.Acknowledgements = append(complaint.Acknowledgements, domain.Acknowledgement{
		Level:   req.Level,
		ActorID: req.ActorID,
		AckAt:   now,
	})

	if err := h.persistenceService.Put(stub, complaintKey(complaint.ComplaintID), complaint); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %v", err)
	}

	detail := fmt.Sprintf("Acknowledged at level %d", req.Level)
	if err := h.recordHistory(stub, complaint.ComplaintID, "ACKNOWLEDGED", req.ActorID, detail, now); err != nil {
		return nil, err
	}

	if err := h.eventService.EmitComplaintAcknowledged(stub, complaint, req.Level, req.ActorID, now); err != nil {
		return nil, fmt.Errorf("failed to emit event: %v", err)
	}

	return json.Marshal(complaint)
}

// ResolutionRequest carries the fields closing out a complaint.
type ResolutionRequest struct {
	ComplaintID string `json:"complaintID"`
	ActorID     string `json:"actorID"`
	Note        string `json:"note,omitempty"`
}

// ResolveComplaint moves a complaint to its terminal state. Resolution freezes
// the escalation level as a permanent record of how far the complaint climbed.
func (h *ComplaintHandler) ResolveComplaint(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}

	var req ResolutionRequest
	if err := json.Unmarshal([]byte(args[0]), &req); err != nil {
		return nil, fmt.Errorf("failed to parse resolution request: %v", err)
	}
	if req.ActorID == "" {
		return nil, fmt.Errorf("actorID is required")
	}

	complaint, err := h.loadComplaint(stub, req.ComplaintID)
	if err != nil {
		return nil, err
	}
	if complaint.IsResolved() {
		return nil, fmt.Errorf("complaint %s is already resolved", req.ComplaintID)
	}

	now, err := utils.TxTime(stub)
	if err != nil {
		return nil, err
	}

	previousStatus := complaint.Status
	complaint.Status = domain.StatusResolved
	complaint.ResolvedAt = &now
	complaint.ResolvedBy = req.ActorID

	if err := h.persistenceService.Put(stub, complaintKey(complaint.ComplaintID), complaint); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %v", err)
	}

	if err := h.deleteIndex(stub, config.IndexComplaintByStatus, string(previousStatus), complaint.ComplaintID); err != nil {
		return nil, err
	}
	if err := h.putIndex(stub, config.IndexComplaintByStatus, string(complaint.Status), complaint.ComplaintID); err != nil {
		return nil, err
	}

	if err := h.recordHistory(stub, complaint.ComplaintID, "RESOLVED", req.ActorID, req.Note, now); err != nil {
		return nil, err
	}

	if err := h.eventService.EmitComplaintResolved(stub, complaint, req.ActorID, now); err != nil {
		return nil, fmt.Errorf("failed to emit event: %v", err)
	}

	return json.Marshal(complaint)
}

// QueryComplaintsByStatus queries complaints by lifecycle status
func (h *ComplaintHandler) QueryComplaintsByStatus(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}

	status := domain.ComplaintStatus(args[0])
	if status != domain.StatusOpen && status != domain.StatusResolved {
		return nil, fmt.Errorf("invalid status %q", args[0])
	}

	complaints, err := h.loadComplaintsByIndex(stub, config.IndexComplaintByStatus, string(status))
	if err != nil {
		return nil, err
	}

	return json.Marshal(complaints)
}

// QueryComplaintsByDepartment queries complaints assigned to a department
func (h *ComplaintHandler) QueryComplaintsByDepartment(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}

	complaints, err := h.loadComplaintsByIndex(stub, config.IndexComplaintByDepartment, args[0])
	if err != nil {
		return nil, err
	}

	return json.Marshal(complaints)
}

// QueryComplaintsByDistrict queries complaints lodged in a district
func (h *ComplaintHandler) QueryComplaintsByDistrict(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 1, got %d", len(args))
	}

	district := args[0]
	if !domain.IsValidDistrict(district) {
		return nil, fmt.Errorf("invalid district %q", district)
	}

	complaints, err := h.loadComplaintsByIndex(stub, config.IndexComplaintByDistrict, district)
	if err != nil {
		return nil, err
	}

	return json.Marshal(complaints)
}

// Helper methods

func complaintKey(complaintID string) string {
	return config.ComplaintKeyPrefix + complaintID
}

func (h *ComplaintHandler) loadComplaint(stub shim.ChaincodeStubInterface, complaintID string) (*domain.Complaint, error) {
	if err := utils.ValidateID(complaintID, config.ComplaintPrefix); err != nil {
		return nil, fmt.Errorf("invalid complaint ID: %v", err)
	}

	var complaint domain.Complaint
	if err := h.persistenceService.Get(stub, complaintKey(complaintID), &complaint); err != nil {
		return nil, fmt.Errorf("complaint not found: %v", err)
	}
	return &complaint, nil
}

func (h *ComplaintHandler) loadComplaintsByIndex(stub shim.ChaincodeStubInterface, objectType, attribute string) ([]domain.Complaint, error) {
	ids, err := h.persistenceService.GetKeysByPartialCompositeKey(stub, objectType, []string{attribute})
	if err != nil {
		return nil, err
	}

	complaints := make([]domain.Complaint, 0, len(ids))
	for _, id := range ids {
		var complaint domain.Complaint
		if err := h.persistenceService.Get(stub, complaintKey(id), &complaint); err != nil {
			return nil, fmt.Errorf("failed to load indexed complaint %s: %v", id, err)
		}
		complaints = append(complaints, complaint)
	}

	return complaints, nil
}

func (h *ComplaintHandler) putIndex(stub shim.ChaincodeStubInterface, objectType, attribute, complaintID string) error {
	key, err := stub.CreateCompositeKey(objectType, []string{attribute, complaintID})
	if err != nil {
		return fmt.Errorf("failed to create %s index key: %v", objectType, err)
	}
	if err := stub.PutState(key, []byte(complaintID)); err != nil {
		return fmt.Errorf("failed to write %s index: %v", objectType, err)
	}
	return nil
}

func (h *ComplaintHandler) deleteIndex(stub shim.ChaincodeStubInterface, objectType, attribute, complaintID string) error {
	key, err := stub.CreateCompositeKey(objectType, []string{attribute, complaintID})
	if err != nil {
		return fmt.Errorf("failed to create %s index key: %v", objectType, err)
	}
	if err := stub.DelState(key); err != nil {
		return fmt.Errorf("failed to delete %s index: %v", objectType, err)
	}
	return nil
}

func (h *ComplaintHandler) recordHistory(stub shim.ChaincodeStubInterface, complaintID, action, actorID, detail string, at time.Time) error {
	historyID := utils.DerivedID(config.HistoryPrefix, stub.GetTxID(), complaintID, action)

	entry := domain.TimelineEntry{
		HistoryID: historyID,
		Timestamp: at,
		Action:    action,
		ActorID:   actorID,
		Detail:    detail,
	}

	key, err := stub.CreateCompositeKey(config.IndexHistory, []string{complaintID, historyID})
	if err != nil {
		return fmt.Errorf("failed to create history key: %v", err)
	}

	return h.persistenceService.Put(stub, key, entry)
}
