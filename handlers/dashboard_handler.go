package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/civicledger/grievance-chaincode/config"
	"github.com/civicledger/grievance-chaincode/domain"
	"github.com/civicledger/grievance-chaincode/utils"
)

// DashboardHandler handles read-only aggregation queries
type DashboardHandler struct {
	complaints *ComplaintHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{
		complaints: NewComplaintHandler(),
	}
}

// GetDashboardStats aggregates every complaint into the dashboard snapshot at
// the transaction timestamp. Pure read: the snapshot is computed from the
// status indexes and never written back.
func (h *DashboardHandler) GetDashboardStats(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 0, got %d", len(args))
	}

	now, err := utils.TxTime(stub)
	if err != nil {
		return nil, err
	}

	open, err := h.complaints.loadComplaintsByIndex(stub, config.IndexComplaintByStatus, string(domain.StatusOpen))
	if err != nil {
		return nil, err
	}
	resolved, err := h.complaints.loadComplaintsByIndex(stub, config.IndexComplaintByStatus, string(domain.StatusResolved))
	if err != nil {
		return nil, err
	}

	snapshot := domain.Aggregate(append(open, resolved...), now)

	return json.Marshal(snapshot)
}
