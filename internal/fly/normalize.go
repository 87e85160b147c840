package fly

// Normalization rules for upstream nodes. Collection slots may come back
// null when the caller is not authorized to view an item; those slots are
// dropped silently and the remaining order is preserved. Optional sub-objects
// stay optional; no defaults are substituted beyond the model's declared
// zero values (a missing status string stays "").

// normalizeApps filters authorization-null slots out of an apps collection
// and maps the surviving nodes onto App values.
func normalizeApps(nodes []*appNode) []App {
	apps := make([]App, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		apps = append(apps, appFromNode(n))
	}
	return apps
}

// normalizeMachines maps machine nodes onto Machine values, dropping null
// slots.
func normalizeMachines(nodes []*machineNode) []Machine {
	machines := make([]Machine, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		machines = append(machines, machineFromNode(n))
	}
	return machines
}

// normalizeAllocations maps allocation nodes onto Allocation values, dropping
// null slots.
func normalizeAllocations(nodes []*allocationNode) []Allocation {
	allocs := make([]Allocation, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		allocs = append(allocs, Allocation{
			ID:      n.ID,
			Status:  n.Status,
			Region:  n.Region,
			Version: n.Version,
		})
	}
	return allocs
}

// normalizeRegions maps region nodes onto Region values, dropping null slots.
func normalizeRegions(nodes []*regionNode) []Region {
	regions := make([]Region, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		regions = append(regions, Region{
			Code:             n.Code,
			Name:             n.Name,
			GatewayAvailable: n.GatewayAvailable,
		})
	}
	return regions
}

// normalizeSecrets maps secret nodes onto Secret values, dropping null slots.
func normalizeSecrets(nodes []*secretNode) []Secret {
	secrets := make([]Secret, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		secrets = append(secrets, Secret{
			Name:      n.Name,
			Digest:    n.Digest,
			CreatedAt: n.CreatedAt,
		})
	}
	return secrets
}

func appFromNode(n *appNode) App {
	return App{
		ID:             n.ID,
		Name:           n.Name,
		Status:         n.Status,
		Deployed:       n.Deployed,
		Hostname:       n.Hostname,
		Organization:   orgFromNode(n.Organization),
		CurrentRelease: releaseFromNode(n.CurrentRelease),
	}
}

func orgFromNode(n *orgNode) *Organization {
	if n == nil {
		return nil
	}
	return &Organization{
		ID:   n.ID,
		Name: n.Name,
		Slug: n.Slug,
	}
}

func releaseFromNode(n *releaseNode) *Release {
	if n == nil {
		return nil
	}
	return &Release{
		ID:          n.ID,
		Version:     n.Version,
		Status:      n.Status,
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
	}
}

func machineFromNode(n *machineNode) Machine {
	return Machine{
		ID:         n.ID,
		Name:       n.Name,
		State:      n.State,
		Region:     n.Region,
		InstanceID: n.InstanceID,
		PrivateIP:  n.PrivateIP,
		Config:     machineConfigFromNode(n.Config),
	}
}

func machineConfigFromNode(n *machineConfigNode) *MachineConfig {
	if n == nil {
		return nil
	}
	return &MachineConfig{
		Size:  n.Size,
		Image: n.Image,
	}
}
