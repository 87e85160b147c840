package fly

import (
	"encoding/json"
	"reflect"
	"testing"
)

// ---------------------------------------------------------------------------
// Round-trip tests: a fully-populated entity survives serialize/deserialize
// with every field intact.
// ---------------------------------------------------------------------------

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func Test_App_RoundTrip(t *testing.T) {
	app := App{
		ID:       "app_1",
		Name:     "alpha",
		Status:   "deployed",
		Deployed: true,
		Hostname: strptr("alpha.fly.dev"),
		Organization: &Organization{
			ID:   "org_1",
			Name: "Acme",
			Slug: "acme",
		},
		CurrentRelease: &Release{
			ID:          "rel_1",
			Version:     12,
			Status:      "succeeded",
			Description: strptr("v12 rollout"),
			CreatedAt:   strptr("2024-03-01T10:00:00Z"),
		},
	}

	data, err := json.Marshal(app)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	var got App
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(app, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, app)
	}
}

func Test_Machine_RoundTrip(t *testing.T) {
	machine := Machine{
		ID:         "m_1",
		Name:       "worker-1",
		State:      "started",
		Region:     "fra",
		InstanceID: strptr("inst_9"),
		PrivateIP:  strptr("fdaa:0:1::3"),
		Config: &MachineConfig{
			Size:  strptr("shared-cpu-1x"),
			Image: strptr("registry.fly.io/alpha:v12"),
		},
	}

	data, err := json.Marshal(machine)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	var got Machine
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(machine, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, machine)
	}
}

func Test_Allocation_RoundTrip(t *testing.T) {
	alloc := Allocation{
		ID:      "al_1",
		Status:  "running",
		Region:  "iad",
		Version: intptr(4),
	}

	data, err := json.Marshal(alloc)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	var got Allocation
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(alloc, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, alloc)
	}
}

// Optional fields absent at construction stay absent after a round trip;
// omitempty keeps them off the wire entirely.
func Test_App_RoundTrip_OptionalFieldsAbsent(t *testing.T) {
	app := App{ID: "app_2", Name: "bare"}

	data, err := json.Marshal(app)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}

	var asMap map[string]any
	if err := json.Unmarshal(data, &asMap); err != nil {
		t.Fatalf("json.Unmarshal to map: %v", err)
	}
	for _, key := range []string{"hostname", "organization", "current_release"} {
		if _, ok := asMap[key]; ok {
			t.Errorf("expected %q to be omitted, body = %s", key, data)
		}
	}

	var got App
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(app, got) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, app)
	}
}
