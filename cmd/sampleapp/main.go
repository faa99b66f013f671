// Package main runs the lab's sample application.
//
// The app serves blob listing and upload endpoints backed by the lab's
// storage container, authenticating with DefaultAzureCredential. Inside the
// cluster that resolves to the projected workload-identity token; locally it
// falls back to the developer's Azure CLI login.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/imamik/akslab/internal/blob"
	"github.com/imamik/akslab/internal/sampleapp"
)

const listenAddr = ":8080"

func main() {
	accountName := os.Getenv("AZURE_STORAGE_ACCOUNT_NAME")
	if accountName == "" {
		log.Fatal("AZURE_STORAGE_ACCOUNT_NAME must be set")
	}
	container := os.Getenv("AZURE_STORAGE_CONTAINER_NAME")
	if container == "" {
		container = "data"
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		log.Fatalf("failed to obtain credential: %v", err)
	}

	store, err := blob.New(accountName, container, cred)
	if err != nil {
		log.Fatalf("failed to create blob store: %v", err)
	}

	server := sampleapp.NewServer(store, accountName, container)

	log.Printf("starting sample app on %s (account=%s container=%s)", listenAddr, accountName, container)
	httpServer := &http.Server{
		Addr:              listenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
