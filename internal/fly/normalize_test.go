package fly

import (
	"encoding/json"
	"testing"
)

// ---------------------------------------------------------------------------
// Null-slot filtering
// ---------------------------------------------------------------------------

// An apps collection of [A, null, B, null] normalizes to [A, B]: null slots
// are authorization holes and are dropped silently, preserving relative order.
func Test_normalizeApps_DropsNullSlots(t *testing.T) {
	raw := `{
		"apps": {
			"nodes": [
				{"id": "a1", "name": "alpha", "status": "deployed", "deployed": true},
				null,
				{"id": "b2", "name": "beta", "status": "suspended", "deployed": false},
				null
			]
		}
	}`

	var resp appsResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}

	apps := normalizeApps(resp.Apps.Nodes)
	if len(apps) != 2 {
		t.Fatalf("len(apps) = %d, want 2", len(apps))
	}
	if apps[0].Name != "alpha" || apps[1].Name != "beta" {
		t.Errorf("order not preserved: got [%s, %s], want [alpha, beta]", apps[0].Name, apps[1].Name)
	}
}

func Test_normalizeApps_AllNull(t *testing.T) {
	apps := normalizeApps([]*appNode{nil, nil, nil})
	if len(apps) != 0 {
		t.Errorf("len(apps) = %d, want 0", len(apps))
	}
}

func Test_normalizeApps_EmptyInput(t *testing.T) {
	if got := normalizeApps(nil); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func Test_normalizeMachines_DropsNullSlots(t *testing.T) {
	nodes := []*machineNode{
		{ID: "m1", Name: "one", State: "started", Region: "fra"},
		nil,
		{ID: "m2", Name: "two", State: "stopped", Region: "iad"},
	}

	machines := normalizeMachines(nodes)
	if len(machines) != 2 {
		t.Fatalf("len(machines) = %d, want 2", len(machines))
	}
	if machines[0].ID != "m1" || machines[1].ID != "m2" {
		t.Errorf("order not preserved: got [%s, %s]", machines[0].ID, machines[1].ID)
	}
}

// ---------------------------------------------------------------------------
// Field mapping
// ---------------------------------------------------------------------------

func Test_appFromNode_FullNode(t *testing.T) {
	hostname := "alpha.fly.dev"
	desc := "v12 rollout"
	created := "2024-03-01T10:00:00Z"

	node := &appNode{
		ID:       "app_1",
		Name:     "alpha",
		Status:   "deployed",
		Deployed: true,
		Hostname: &hostname,
		Organization: &orgNode{
			ID:   "org_1",
			Name: "Acme",
			Slug: "acme",
		},
		CurrentRelease: &releaseNode{
			ID:          "rel_1",
			Version:     12,
			Status:      "succeeded",
			Description: &desc,
			CreatedAt:   &created,
		},
	}

	app := appFromNode(node)

	if app.ID != "app_1" || app.Name != "alpha" || app.Status != "deployed" || !app.Deployed {
		t.Errorf("scalar fields not mapped: %+v", app)
	}
	if app.Hostname == nil || *app.Hostname != hostname {
		t.Errorf("Hostname = %v, want %q", app.Hostname, hostname)
	}
	if app.Organization == nil {
		t.Fatal("expected non-nil Organization")
	}
	if app.Organization.Slug != "acme" {
		t.Errorf("Organization.Slug = %q, want %q", app.Organization.Slug, "acme")
	}
	if app.CurrentRelease == nil {
		t.Fatal("expected non-nil CurrentRelease")
	}
	if app.CurrentRelease.Version != 12 {
		t.Errorf("CurrentRelease.Version = %d, want 12", app.CurrentRelease.Version)
	}
	if app.CurrentRelease.CreatedAt == nil || *app.CurrentRelease.CreatedAt != created {
		t.Errorf("CurrentRelease.CreatedAt = %v, want %q", app.CurrentRelease.CreatedAt, created)
	}
}

// Optional sub-objects stay absent; no defaults are invented for them.
func Test_appFromNode_OptionalSubObjectsAbsent(t *testing.T) {
	node := &appNode{ID: "app_2", Name: "bare"}

	app := appFromNode(node)

	if app.Hostname != nil {
		t.Errorf("Hostname = %v, want nil", app.Hostname)
	}
	if app.Organization != nil {
		t.Errorf("Organization = %v, want nil", app.Organization)
	}
	if app.CurrentRelease != nil {
		t.Errorf("CurrentRelease = %v, want nil", app.CurrentRelease)
	}
}

// A status missing on the wire decodes to the declared zero value, the empty
// string, not to any inferred default.
func Test_appNode_MissingStatusDecodesEmpty(t *testing.T) {
	raw := `{"id": "app_3", "name": "nostatus", "deployed": true}`

	var node appNode
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if node.Status != "" {
		t.Errorf("Status = %q, want empty string", node.Status)
	}
}

// Wire camelCase names map onto the internal fields.
func Test_appNode_CamelCaseMapping(t *testing.T) {
	raw := `{
		"id": "app_4",
		"name": "camel",
		"currentRelease": {"id": "rel_9", "version": 9, "status": "succeeded", "createdAt": "2024-01-01T00:00:00Z"}
	}`

	var node appNode
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if node.CurrentRelease == nil {
		t.Fatal("expected currentRelease to decode")
	}
	if node.CurrentRelease.CreatedAt == nil || *node.CurrentRelease.CreatedAt != "2024-01-01T00:00:00Z" {
		t.Errorf("CreatedAt = %v, want the wire value", node.CurrentRelease.CreatedAt)
	}
}

func Test_machineFromNode_OptionalConfig(t *testing.T) {
	size := "shared-cpu-1x"

	withConfig := machineFromNode(&machineNode{
		ID: "m1", Name: "one", State: "started", Region: "fra",
		Config: &machineConfigNode{Size: &size},
	})
	if withConfig.Config == nil {
		t.Fatal("expected non-nil Config")
	}
	if withConfig.Config.Size == nil || *withConfig.Config.Size != size {
		t.Errorf("Config.Size = %v, want %q", withConfig.Config.Size, size)
	}
	if withConfig.Config.Image != nil {
		t.Errorf("Config.Image = %v, want nil", withConfig.Config.Image)
	}

	withoutConfig := machineFromNode(&machineNode{ID: "m2", Name: "two", State: "stopped", Region: "iad"})
	if withoutConfig.Config != nil {
		t.Errorf("Config = %v, want nil", withoutConfig.Config)
	}
}

func Test_normalizeAllocations_OptionalVersion(t *testing.T) {
	v := 3
	allocs := normalizeAllocations([]*allocationNode{
		{ID: "al1", Status: "running", Region: "fra", Version: &v},
		{ID: "al2", Status: "pending", Region: "iad"},
		nil,
	})

	if len(allocs) != 2 {
		t.Fatalf("len(allocs) = %d, want 2", len(allocs))
	}
	if allocs[0].Version == nil || *allocs[0].Version != 3 {
		t.Errorf("allocs[0].Version = %v, want 3", allocs[0].Version)
	}
	if allocs[1].Version != nil {
		t.Errorf("allocs[1].Version = %v, want nil", allocs[1].Version)
	}
}
