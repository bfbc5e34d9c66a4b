package handlers_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicledger/grievance-chaincode/domain"
	"github.com/civicledger/grievance-chaincode/handlers"
)

func getDashboard(t *testing.T, stub *shimtest.MockStub, txID string, at time.Time) domain.DashboardSnapshot {
	t.Helper()

	setTxTime(stub, at)
	response := stub.MockInvoke(txID, [][]byte{[]byte("GetDashboardStats")})
	require.Equal(t, int32(shim.OK), response.Status, response.Message)

	var snapshot domain.DashboardSnapshot
	require.NoError(t, json.Unmarshal(response.Payload, &snapshot))
	return snapshot
}

func TestGetDashboardStats(t *testing.T) {
	stub := newGrievanceStub()

	// Three complaints: one resolved, one escalated, one plain open.
	first := submitComplaint(t, stub, "tx1", baseTime, submissionRequest())

	sanitationReq := submissionRequest()
	sanitationReq.Category = domain.CategorySanitation
	sanitationReq.District = domain.DistrictB
	second := submitComplaint(t, stub, "tx2", baseTime, sanitationReq)

	roadsReq := submissionRequest()
	roadsReq.Category = domain.CategoryRoads
	submitComplaint(t, stub, "tx3", baseTime.AddDate(0, 0, 1), roadsReq)

	resolveBytes, err := json.Marshal(handlers.ResolutionRequest{
		ComplaintID: first.ComplaintID,
		ActorID:     "officer-07",
	})
	require.NoError(t, err)
	setTxTime(stub, baseTime.AddDate(0, 0, 1))
	require.Equal(t, int32(shim.OK), stub.MockInvoke("tx4", [][]byte{[]byte("ResolveComplaint"), resolveBytes}).Status)

	// Sanitation has a 3-day window; five days in it escalates.
	now := baseTime.AddDate(0, 0, 5)
	evaluateEscalation(t, stub, "tx5", second.ComplaintID, now)

	snapshot := getDashboard(t, stub, "tx6", now)

	assert.Equal(t, domain.Stats{Total: 3, Resolved: 1, Open: 2, Escalated: 1}, snapshot.Stats)
	assert.Equal(t, snapshot.Stats.Total, snapshot.Stats.Resolved+snapshot.Stats.Open)

	require.Len(t, snapshot.StatusDistribution, 3)
	assert.Equal(t, 1, snapshot.StatusDistribution[0].Value)
	assert.Equal(t, 2, snapshot.StatusDistribution[1].Value)
	assert.Equal(t, 1, snapshot.StatusDistribution[2].Value)

	require.Len(t, snapshot.ByDepartment, 3)
	assert.Equal(t, domain.CategoryRoads, snapshot.ByDepartment[0].Name)
	assert.Equal(t, domain.CategorySanitation, snapshot.ByDepartment[1].Name)
	assert.Equal(t, domain.CategoryWaterSupply, snapshot.ByDepartment[2].Name)
	assert.Equal(t, 1, snapshot.ByDepartment[1].Escalated)
	assert.Equal(t, 1, snapshot.ByDepartment[2].Resolved)

	// Watchlist holds the two open complaints, breached sanitation first.
	require.Len(t, snapshot.Watchlist, 2)
	assert.Equal(t, second.ComplaintID, snapshot.Watchlist[0].ComplaintID)
	assert.True(t, snapshot.Watchlist[0].Breached)
	assert.False(t, snapshot.Watchlist[1].Breached)
}

func TestGetDashboardStatsWatchlistBounded(t *testing.T) {
	stub := newGrievanceStub()

	for i := 0; i < 8; i++ {
		req := submissionRequest()
		req.Subject = fmt.Sprintf("Complaint number %d", i)
		submitComplaint(t, stub, fmt.Sprintf("tx%d", i), baseTime.Add(time.Duration(i)*time.Hour), req)
	}

	snapshot := getDashboard(t, stub, "tx100", baseTime.AddDate(0, 0, 6))

	assert.Equal(t, 8, snapshot.Stats.Total)
	assert.Len(t, snapshot.Watchlist, domain.DefaultWatchlistLimit)
	for _, entry := range snapshot.Watchlist {
		assert.True(t, entry.Warning, "six days into a seven-day window")
		assert.False(t, entry.Breached)
	}
}

func TestGetDashboardStatsEmptyLedger(t *testing.T) {
	stub := newGrievanceStub()

	snapshot := getDashboard(t, stub, "tx1", baseTime)

	assert.Equal(t, domain.Stats{}, snapshot.Stats)
	assert.Empty(t, snapshot.ByDepartment)
	assert.Empty(t, snapshot.Watchlist)
	assert.Equal(t, baseTime, snapshot.GeneratedAt.UTC())
}

func TestGetDashboardStatsIdempotent(t *testing.T) {
	stub := newGrievanceStub()
	submitComplaint(t, stub, "tx1", baseTime, submissionRequest())

	now := baseTime.AddDate(0, 0, 3)
	first := getDashboard(t, stub, "tx2", now)
	second := getDashboard(t, stub, "tx3", now)

	assert.Equal(t, first, second)
}
