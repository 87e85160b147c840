// Package fly exposes typed operations against the Fly.io GraphQL API: the
// internal entity model, the fixed query documents with their decode schemas,
// and the normalization rules that map nullable upstream nodes onto strict
// internal values.
package fly

// App is a Fly.io application. ID and Name are always present; every other
// field may be absent because the upstream nulls fields the caller is not
// authorized to view.
type App struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Status         string        `json:"status"`
	Deployed       bool          `json:"deployed"`
	Hostname       *string       `json:"hostname,omitempty"`
	Organization   *Organization `json:"organization,omitempty"`
	CurrentRelease *Release      `json:"current_release,omitempty"`
}

// Organization is the owning organization of an App. All fields are required
// whenever the organization is present at all.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Release is a single deployment of an App. CreatedAt is kept as the opaque
// timestamp string the upstream returns; it is never parsed into a time type.
type Release struct {
	ID          string  `json:"id"`
	Version     int     `json:"version"`
	Status      string  `json:"status"`
	Description *string `json:"description,omitempty"`
	CreatedAt   *string `json:"created_at,omitempty"`
}

// Machine is a Fly.io machine (VM instance).
type Machine struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	State      string         `json:"state"`
	Region     string         `json:"region"`
	InstanceID *string        `json:"instance_id,omitempty"`
	PrivateIP  *string        `json:"private_ip,omitempty"`
	Config     *MachineConfig `json:"config,omitempty"`
}

// MachineConfig holds the optional sizing and image settings of a Machine.
type MachineConfig struct {
	Size  *string `json:"size,omitempty"`
	Image *string `json:"image,omitempty"`
}

// Allocation is a legacy (Nomad-era) VM unit.
type Allocation struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Region  string `json:"region"`
	Version *int   `json:"version,omitempty"`
}

// AppStatus is the combined status view of an App: the app itself plus its
// machines and legacy allocations.
type AppStatus struct {
	App         App          `json:"app"`
	Machines    []Machine    `json:"machines"`
	Allocations []Allocation `json:"allocations"`
}

// LogEntry is a single application log line.
type LogEntry struct {
	Timestamp string  `json:"timestamp"`
	Message   string  `json:"message"`
	Level     *string `json:"level,omitempty"`
	Region    *string `json:"region,omitempty"`
	Instance  *string `json:"instance,omitempty"`
}

// Secret describes an application secret. Values are write-only upstream, so
// only the name and set-time digest metadata come back.
type Secret struct {
	Name      string `json:"name"`
	Digest    string `json:"digest,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Region is a Fly.io platform region.
type Region struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	GatewayAvailable bool   `json:"gateway_available"`
}
