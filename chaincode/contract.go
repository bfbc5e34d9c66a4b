package chaincode

import (
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-protos-go/peer"
)

// GrievanceContract implements the chaincode interface for the grievance
// routing and escalation ledger.
type GrievanceContract struct {
	router *Router
}

// NewGrievanceContract creates a new grievance contract
func NewGrievanceContract() *GrievanceContract {
	return &GrievanceContract{
		router: NewRouter(),
	}
}

// Init initializes the chaincode
func (gc *GrievanceContract) Init(stub shim.ChaincodeStubInterface) peer.Response {
	return shim.Success(nil)
}

// Invoke handles chaincode invocations
func (gc *GrievanceContract) Invoke(stub shim.ChaincodeStubInterface) peer.Response {
	function, args := stub.GetFunctionAndParameters()

	response, err := gc.router.Route(stub, function, args)
	if err != nil {
		return shim.Error(fmt.Sprintf("Error invoking function %s: %v", function, err))
	}

	return shim.Success(response)
}
