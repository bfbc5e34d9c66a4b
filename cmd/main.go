package main

import (
	"log"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/civicledger/grievance-chaincode/chaincode"
)

func main() {
	grievanceChaincode := chaincode.NewGrievanceContract()

	if err := shim.Start(grievanceChaincode); err != nil {
		log.Fatalf("Error starting Grievance chaincode: %v", err)
	}
}
