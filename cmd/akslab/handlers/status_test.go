package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akslab/internal/k8s"
	"github.com/imamik/akslab/internal/platform/azure"
)

func TestStatusWithLiveWorkload(t *testing.T) {
	cfg := testConfig(t)
	mock := azure.NewMockManager()
	kube := &fakeKube{workload: &k8s.Workload{
		DesiredReplicas: 2,
		ReadyReplicas:   2,
		Available:       true,
		ExternalAddress: "20.1.2.3",
	}}
	swapFixtures(t, cfg, mock, kube)
	seedState(t, cfg.StateFile, [][2]string{{"RESOURCE_GROUP", "akslab-rg"}})

	require.NoError(t, Status(context.Background(), ""))
}

func TestStatusToleratesMissingWorkload(t *testing.T) {
	cfg := testConfig(t)
	mock := azure.NewMockManager()
	kube := &fakeKube{statusErr: assert.AnError}
	swapFixtures(t, cfg, mock, kube)

	require.NoError(t, Status(context.Background(), ""))
}

func TestStatusToleratesUnreachableCluster(t *testing.T) {
	cfg := testConfig(t)
	mock := azure.NewMockManager()
	mock.Errors["ClusterCredentials"] = assert.AnError
	swapFixtures(t, cfg, mock, &fakeKube{})

	require.NoError(t, Status(context.Background(), ""))
}
