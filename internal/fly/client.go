package fly

import (
	"context"
	"fmt"

	"github.com/flyops/fly-mcp/internal/graphql"
)

const defaultAppsLimit = 25

// Machine scale actions accepted by ScaleMachine.
const (
	ScaleActionStart = "start"
	ScaleActionStop  = "stop"
)

// API exposes the supported Fly.io operations as typed methods. Every
// operation is a fixed query document routed through the single Execute
// primitive of the underlying graphql.Client.
type API struct {
	gql graphql.Client
}

// NewAPI returns an API backed by the given GraphQL client.
func NewAPI(client graphql.Client) *API {
	return &API{gql: client}
}

// Ping issues a minimal identity query and reports whether the upstream
// returned a non-empty viewer ID. An empty ID is a logically-false ping even
// though the transport round trip succeeded.
func (a *API) Ping(ctx context.Context) (bool, error) {
	resp, err := graphql.Query[viewerResponse](ctx, a.gql, viewerQuery, nil)
	if err != nil {
		return false, err
	}
	return resp.Viewer.ID != "", nil
}

// ListApps returns up to limit applications visible to the authenticated
// user. A non-positive limit falls back to the default of 25. Slots the user
// is not authorized to view are dropped from the result.
func (a *API) ListApps(ctx context.Context, limit int) ([]App, error) {
	if limit <= 0 {
		limit = defaultAppsLimit
	}

	resp, err := graphql.Query[appsResponse](ctx, a.gql, appsQuery, map[string]any{
		"first": limit,
	})
	if err != nil {
		return nil, err
	}

	return normalizeApps(resp.Apps.Nodes), nil
}

// GetAppStatus returns the combined status view of the named application:
// the app itself, its machines, and any legacy allocations.
func (a *API) GetAppStatus(ctx context.Context, appName string) (*AppStatus, error) {
	resp, err := graphql.Query[appStatusResponse](ctx, a.gql, appStatusQuery, map[string]any{
		"name": appName,
	})
	if err != nil {
		return nil, err
	}
	if resp.App == nil {
		return nil, fmt.Errorf("fly: app %q not found", appName)
	}

	return &AppStatus{
		App:         appFromNode(&resp.App.appNode),
		Machines:    normalizeMachines(resp.App.Machines.Nodes),
		Allocations: normalizeAllocations(resp.App.Allocations),
	}, nil
}

// ListMachines returns the machines of the named application.
func (a *API) ListMachines(ctx context.Context, appName string) ([]Machine, error) {
	resp, err := graphql.Query[machinesResponse](ctx, a.gql, machinesQuery, map[string]any{
		"name": appName,
	})
	if err != nil {
		return nil, err
	}
	if resp.App == nil {
		return nil, fmt.Errorf("fly: app %q not found", appName)
	}

	return normalizeMachines(resp.App.Machines.Nodes), nil
}

// GetUser returns the authenticated user's profile as the upstream shapes
// it. The result is passed through untyped; callers that need entities use
// the typed operations instead.
func (a *API) GetUser(ctx context.Context) (map[string]any, error) {
	return graphql.Query[map[string]any](ctx, a.gql, userQuery, nil)
}

// ListRegions returns every platform region.
func (a *API) ListRegions(ctx context.Context) ([]Region, error) {
	resp, err := graphql.Query[regionsResponse](ctx, a.gql, regionsQuery, nil)
	if err != nil {
		return nil, err
	}
	return normalizeRegions(resp.Platform.Regions), nil
}

// ListSecrets returns the secret names set on the named application. Secret
// values are write-only upstream and are never returned.
func (a *API) ListSecrets(ctx context.Context, appName string) ([]Secret, error) {
	resp, err := graphql.Query[secretsResponse](ctx, a.gql, secretsQuery, map[string]any{
		"name": appName,
	})
	if err != nil {
		return nil, err
	}
	if resp.App == nil {
		return nil, fmt.Errorf("fly: app %q not found", appName)
	}

	return normalizeSecrets(resp.App.Secrets), nil
}

// SetSecret sets one secret on the named application and returns the release
// the change triggered, if any. Secret mutations are not idempotent and are
// never retried.
func (a *API) SetSecret(ctx context.Context, appName, key, value string) (*Release, error) {
	resp, err := graphql.Query[setSecretsResponse](ctx, a.gql, setSecretsMutation, map[string]any{
		"input": map[string]any{
			"appId": appName,
			"secrets": []map[string]any{
				{"key": key, "value": value},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return releaseFromNode(resp.SetSecrets.Release), nil
}

// DeleteSecret removes one secret from the named application and returns the
// release the change triggered, if any.
func (a *API) DeleteSecret(ctx context.Context, appName, key string) (*Release, error) {
	resp, err := graphql.Query[unsetSecretsResponse](ctx, a.gql, unsetSecretsMutation, map[string]any{
		"input": map[string]any{
			"appId": appName,
			"keys":  []string{key},
		},
	})
	if err != nil {
		return nil, err
	}
	return releaseFromNode(resp.UnsetSecrets.Release), nil
}

// RestartApp restarts every machine of the named application.
func (a *API) RestartApp(ctx context.Context, appName string) (*App, error) {
	resp, err := graphql.Query[restartAppResponse](ctx, a.gql, restartAppMutation, map[string]any{
		"input": map[string]any{
			"appId": appName,
		},
	})
	if err != nil {
		return nil, err
	}
	if resp.RestartApp.App == nil {
		return nil, fmt.Errorf("fly: app %q not found", appName)
	}

	app := appFromNode(resp.RestartApp.App)
	return &app, nil
}

// ScaleMachine starts or stops a single machine of the named application.
// Action must be ScaleActionStart or ScaleActionStop.
func (a *API) ScaleMachine(ctx context.Context, appName, machineID, action string) (*Machine, error) {
	input := map[string]any{
		"input": map[string]any{
			"appId": appName,
			"id":    machineID,
		},
	}

	var node *machineNode
	switch action {
	case ScaleActionStart:
		resp, err := graphql.Query[startMachineResponse](ctx, a.gql, startMachineMutation, input)
		if err != nil {
			return nil, err
		}
		node = resp.StartMachine.Machine
	case ScaleActionStop:
		resp, err := graphql.Query[stopMachineResponse](ctx, a.gql, stopMachineMutation, input)
		if err != nil {
			return nil, err
		}
		node = resp.StopMachine.Machine
	default:
		return nil, fmt.Errorf("fly: unknown scale action %q, valid actions are: start, stop", action)
	}

	if node == nil {
		return nil, fmt.Errorf("fly: machine %q not found on app %q", machineID, appName)
	}

	machine := machineFromNode(node)
	return &machine, nil
}
