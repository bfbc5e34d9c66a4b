package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/civicledger/grievance-chaincode/config"
	"github.com/civicledger/grievance-chaincode/domain"
	"github.com/civicledger/grievance-chaincode/interfaces"
	"github.com/civicledger/grievance-chaincode/utils"
)

// BaseEventService provides common event emission functionality
type BaseEventService struct{}

var _ interfaces.EventEmitter = (*BaseEventService)(nil)

// NewBaseEventService creates a new base event service
func NewBaseEventService() *BaseEventService {
	return &BaseEventService{}
}

// EmitEvent emits a standardized event
func (es *BaseEventService) EmitEvent(stub shim.ChaincodeStubInterface, eventName string, payload interfaces.EventPayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %v", err)
	}

	if err := stub.SetEvent(eventName, payloadBytes); err != nil {
		return fmt.Errorf("failed to emit event %s: %v", eventName, err)
	}

	return nil
}

// CreateEventPayload creates a standardized event payload. The timestamp is
// always the transaction time, never wall-clock time, so every endorsing peer
// produces an identical payload.
func (es *BaseEventService) CreateEventPayload(eventType, entityID, entityType, actorID string, at time.Time, data interface{}, metadata map[string]string) interfaces.EventPayload {
	if metadata == nil {
		metadata = make(map[string]string)
	}
	return interfaces.EventPayload{
		EventType:  eventType,
		EntityID:   entityID,
		EntityType: entityType,
		ActorID:    actorID,
		Timestamp:  utils.FormatTime(at),
		Data:       data,
		Metadata:   metadata,
	}
}

// EventService handles event emission for complaint operations
type EventService struct {
	*BaseEventService
}

// NewEventService creates a new event service
func NewEventService() *EventService {
	return &EventService{
		BaseEventService: NewBaseEventService(),
	}
}

// EmitComplaintSubmitted emits a complaint submitted event
func (es *EventService) EmitComplaintSubmitted(stub shim.ChaincodeStubInterface, complaint *domain.Complaint, actorID string, at time.Time) error {
	metadata := map[string]string{
		"category":   complaint.Category,
		"district":   complaint.District,
		"department": complaint.AssignedDepartment,
		"emergency":  strconv.FormatBool(complaint.Emergency),
	}

	payload := es.CreateEventPayload(
		config.EventComplaintSubmitted,
		complaint.ComplaintID,
		"Complaint",
		actorID,
		at,
		complaint,
		metadata,
	)

	return es.EmitEvent(stub, config.EventComplaintSubmitted, payload)
}

// EmitComplaintAcknowledged emits a complaint acknowledged event
func (es *EventService) EmitComplaintAcknowledged(stub shim.ChaincodeStubInterface, complaint *domain.Complaint, level int, actorID string, at time.Time) error {
	metadata := map[string]string{
		"level":      strconv.Itoa(level),
		"department": complaint.AssignedDepartment,
	}

	payload := es.CreateEventPayload(
		config.EventComplaintAcknowledged,
		complaint.ComplaintID,
		"Complaint",
		actorID,
		at,
		complaint,
		metadata,
	)

	return es.EmitEvent(stub, config.EventComplaintAcknowledged, payload)
}

// EmitComplaintResolved emits a complaint resolved event
func (es *EventService) EmitComplaintResolved(stub shim.ChaincodeStubInterface, complaint *domain.Complaint, actorID string, at time.Time) error {
	metadata := map[string]string{
		"department":      complaint.AssignedDepartment,
		"escalationLevel": strconv.Itoa(complaint.EscalationLevel),
	}

	payload := es.CreateEventPayload(
		config.EventComplaintResolved,
		complaint.ComplaintID,
		"Complaint",
		actorID,
		at,
		complaint,
		metadata,
	)

	return es.EmitEvent(stub, config.EventComplaintResolved, payload)
}

// EmitComplaintEscalated emits a single escalated event carrying every level
// step crossed in this transaction. Fabric keeps only one chaincode event per
// transaction, so the steps are batched into the payload and downstream relays
// fan them out to the authority named in each notifyTarget.
func (es *EventService) EmitComplaintEscalated(stub shim.ChaincodeStubInterface, complaint *domain.Complaint, transitions []domain.Transition, actorID string, at time.Time) error {
	if len(transitions) == 0 {
		return nil
	}
	final := transitions[len(transitions)-1]
	metadata := map[string]string{
		"fromLevel":    strconv.Itoa(transitions[0].FromLevel),
		"toLevel":      strconv.Itoa(final.ToLevel),
		"notifyTarget": final.NotifyTarget,
		"triggeredAt":  utils.FormatTime(final.TriggeredAt),
		"department":   complaint.AssignedDepartment,
	}

	payload := es.CreateEventPayload(
		config.EventComplaintEscalated,
		complaint.ComplaintID,
		"Complaint",
		actorID,
		at,
		transitions,
		metadata,
	)

	return es.EmitEvent(stub, config.EventComplaintEscalated, payload)
}

// EmitEscalationSweep emits a single escalated event for a sweep transaction
// that advanced multiple complaints. The transition batch spans complaints;
// entityID identifies the sweep rather than any one record.
func (es *EventService) EmitEscalationSweep(stub shim.ChaincodeStubInterface, sweepID string, transitions []domain.Transition, actorID string, at time.Time) error {
	if len(transitions) == 0 {
		return nil
	}
	metadata := map[string]string{
		"transitions": strconv.Itoa(len(transitions)),
	}

	payload := es.CreateEventPayload(
		config.EventComplaintEscalated,
		sweepID,
		"EscalationSweep",
		actorID,
		at,
		transitions,
		metadata,
	)

	return es.EmitEvent(stub, config.EventComplaintEscalated, payload)
}
