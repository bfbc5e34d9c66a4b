package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/civicledger/grievance-chaincode/domain"
)

// RulesHandler serves the static governance reference data shown on the
// public rules page.
type RulesHandler struct{}

// NewRulesHandler creates a new rules handler
func NewRulesHandler() *RulesHandler {
	return &RulesHandler{}
}

// GetEscalationMatrix returns the escalation hierarchy in level order
func (h *RulesHandler) GetEscalationMatrix(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 0, got %d", len(args))
	}

	return json.Marshal(domain.EscalationMatrix())
}

// GetSLASchedule returns the per-category SLA windows in display order
func (h *RulesHandler) GetSLASchedule(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 0, got %d", len(args))
	}

	return json.Marshal(domain.SLASchedule())
}

// RoutingTable is the category-to-department map served to intake clients.
type RoutingTable struct {
	Categories []string          `json:"categories"`
	Districts  []string          `json:"districts"`
	Routing    map[string]string `json:"routing"`
}

// GetRoutingTable returns the enumerated categories, districts and the
// department owning each category.
func (h *RulesHandler) GetRoutingTable(stub shim.ChaincodeStubInterface, args []string) ([]byte, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("incorrect number of arguments. Expected 0, got %d", len(args))
	}

	table := RoutingTable{
		Categories: domain.Categories(),
		Districts:  domain.Districts(),
		Routing:    make(map[string]string, len(domain.Categories())),
	}
	for _, category := range domain.Categories() {
		routing, err := domain.ResolveRouting(category, domain.DistrictA)
		if err != nil {
			return nil, err
		}
		table.Routing[category] = routing.Department
	}

	return json.Marshal(table)
}
