package chaincode_test

import (
	"encoding/json"
	"testing"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicledger/grievance-chaincode/chaincode"
	"github.com/civicledger/grievance-chaincode/domain"
	"github.com/civicledger/grievance-chaincode/handlers"
)

func TestInit(t *testing.T) {
	stub := shimtest.NewMockStub("grievance", chaincode.NewGrievanceContract())

	response := stub.MockInit("tx1", nil)

	assert.Equal(t, int32(shim.OK), response.Status)
}

func TestInvokeUnknownFunction(t *testing.T) {
	stub := shimtest.NewMockStub("grievance", chaincode.NewGrievanceContract())

	response := stub.MockInvoke("tx1", [][]byte{[]byte("NoSuchFunction")})

	assert.Equal(t, int32(shim.ERROR), response.Status)
	assert.Contains(t, response.Message, "NoSuchFunction")
}

func TestGetEscalationMatrix(t *testing.T) {
	stub := shimtest.NewMockStub("grievance", chaincode.NewGrievanceContract())

	response := stub.MockInvoke("tx1", [][]byte{[]byte("GetEscalationMatrix")})
	require.Equal(t, int32(shim.OK), response.Status, response.Message)

	var matrix []domain.EscalationStep
	require.NoError(t, json.Unmarshal(response.Payload, &matrix))
	require.Len(t, matrix, domain.MaxEscalationLevel)
	assert.Equal(t, "Department Head", matrix[0].Authority)
	assert.Equal(t, "District Officer", matrix[1].Authority)
	assert.Equal(t, "Collector/Commissioner", matrix[2].Authority)
}

func TestGetSLASchedule(t *testing.T) {
	stub := shimtest.NewMockStub("grievance", chaincode.NewGrievanceContract())

	response := stub.MockInvoke("tx1", [][]byte{[]byte("GetSLASchedule")})
	require.Equal(t, int32(shim.OK), response.Status, response.Message)

	var schedule []domain.SLAWindow
	require.NoError(t, json.Unmarshal(response.Payload, &schedule))
	require.Len(t, schedule, len(domain.Categories()))

	byCategory := make(map[string]domain.SLAWindow)
	for _, window := range schedule {
		byCategory[window.Category] = window
	}
	assert.Equal(t, 7, byCategory[domain.CategoryWaterSupply].StandardDays)
	assert.Equal(t, 15, byCategory[domain.CategoryRoads].StandardDays)
	assert.Equal(t, 12, byCategory[domain.CategorySanitation].EmergencyHours)
}

func TestGetRoutingTable(t *testing.T) {
	stub := shimtest.NewMockStub("grievance", chaincode.NewGrievanceContract())

	response := stub.MockInvoke("tx1", [][]byte{[]byte("GetRoutingTable")})
	require.Equal(t, int32(shim.OK), response.Status, response.Message)

	var table handlers.RoutingTable
	require.NoError(t, json.Unmarshal(response.Payload, &table))
	assert.Equal(t, domain.Categories(), table.Categories)
	assert.Equal(t, domain.Districts(), table.Districts)
	assert.Equal(t, "Water Department", table.Routing[domain.CategoryWaterSupply])
	assert.Len(t, table.Routing, len(domain.Categories()))
}

func TestReferenceFunctionsRejectArguments(t *testing.T) {
	stub := shimtest.NewMockStub("grievance", chaincode.NewGrievanceContract())

	for _, function := range []string{"GetEscalationMatrix", "GetSLASchedule", "GetRoutingTable", "GetDashboardStats"} {
		response := stub.MockInvoke("tx1", [][]byte{[]byte(function), []byte("unexpected")})
		assert.Equal(t, int32(shim.ERROR), response.Status, function)
	}
}
