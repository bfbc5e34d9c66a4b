package chaincode

import (
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/civicledger/grievance-chaincode/handlers"
)

// Router handles function routing for the grievance chaincode
type Router struct {
	handlers map[string]func(shim.ChaincodeStubInterface, []string) ([]byte, error)
}

// NewRouter creates a new router with all handler mappings
func NewRouter() *Router {
	complaintHandler := handlers.NewComplaintHandler()
	escalationHandler := handlers.NewEscalationHandler()
	dashboardHandler := handlers.NewDashboardHandler()
	rulesHandler := handlers.NewRulesHandler()

	return &Router{
		handlers: map[string]func(shim.ChaincodeStubInterface, []string) ([]byte, error){
			// Complaint lifecycle functions
			"SubmitComplaint":      complaintHandler.SubmitComplaint,
			"GetComplaint":         complaintHandler.GetComplaint,
			"GetComplaintTimeline": complaintHandler.GetComplaintTimeline,
			"AcknowledgeComplaint": complaintHandler.AcknowledgeComplaint,
			"ResolveComplaint":     complaintHandler.ResolveComplaint,

			// Escalation functions
			"EvaluateEscalation": escalationHandler.EvaluateEscalation,
			"RunEscalationSweep": escalationHandler.RunEscalationSweep,

			// Query functions
			"QueryComplaintsByStatus":     complaintHandler.QueryComplaintsByStatus,
			"QueryComplaintsByDepartment": complaintHandler.QueryComplaintsByDepartment,
			"QueryComplaintsByDistrict":   complaintHandler.QueryComplaintsByDistrict,
			"GetDashboardStats":           dashboardHandler.GetDashboardStats,

			// Reference data functions
			"GetEscalationMatrix": rulesHandler.GetEscalationMatrix,
			"GetSLASchedule":      rulesHandler.GetSLASchedule,
			"GetRoutingTable":     rulesHandler.GetRoutingTable,
		},
	}
}

// Route routes the function call to the appropriate handler
func (r *Router) Route(stub shim.ChaincodeStubInterface, function string, args []string) ([]byte, error) {
	handler, exists := r.handlers[function]
	if !exists {
		return nil, fmt.Errorf("function %s not found", function)
	}

	return handler(stub, args)
}
