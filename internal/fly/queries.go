package fly

// Fixed query documents for the supported operations. Each document has a
// named decode schema below; the schemas are the only place wire-side
// camelCase field names appear.

const viewerQuery = `
query {
    viewer {
        id
    }
}`

const appsQuery = `
query($first: Int) {
    apps(first: $first) {
        nodes {
            id
            name
            status
            deployed
            hostname
            organization {
                id
                name
                slug
            }
            currentRelease {
                id
                version
                status
                description
                createdAt
            }
        }
    }
}`

const appStatusQuery = `
query($name: String!) {
    app(name: $name) {
        id
        name
        status
        deployed
        hostname
        organization {
            id
            name
            slug
        }
        currentRelease {
            id
            version
            status
            description
            createdAt
        }
        machines {
            nodes {
                id
                name
                state
                region
            }
        }
        allocations {
            id
            status
            region
            version
        }
    }
}`

const machinesQuery = `
query($name: String!) {
    app(name: $name) {
        machines {
            nodes {
                id
                name
                state
                region
            }
        }
    }
}`

const userQuery = `
query {
    viewer {
        id
        email
        name
        organizations {
            nodes {
                id
                name
                slug
            }
        }
    }
}`

const regionsQuery = `
query {
    platform {
        regions {
            code
            name
            gatewayAvailable
        }
    }
}`

const secretsQuery = `
query($name: String!) {
    app(name: $name) {
        secrets {
            name
            digest
            createdAt
        }
    }
}`

const setSecretsMutation = `
mutation($input: SetSecretsInput!) {
    setSecrets(input: $input) {
        release {
            id
            version
            status
            description
            createdAt
        }
    }
}`

const unsetSecretsMutation = `
mutation($input: UnsetSecretsInput!) {
    unsetSecrets(input: $input) {
        release {
            id
            version
            status
            description
            createdAt
        }
    }
}`

const restartAppMutation = `
mutation($input: RestartAppInput!) {
    restartApp(input: $input) {
        app {
            id
            name
            status
            deployed
            hostname
        }
    }
}`

const startMachineMutation = `
mutation($input: StartMachineInput!) {
    startMachine(input: $input) {
        machine {
            id
            name
            state
            region
        }
    }
}`

const stopMachineMutation = `
mutation($input: StopMachineInput!) {
    stopMachine(input: $input) {
        machine {
            id
            name
            state
            region
        }
    }
}`

// ---------------------------------------------------------------------------
// Decode schemas
// ---------------------------------------------------------------------------

// appNode is the wire shape of a single application. Collection slots are
// decoded as pointers because the upstream returns null for entries the
// caller is not authorized to view.
type appNode struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Status         string       `json:"status"`
	Deployed       bool         `json:"deployed"`
	Hostname       *string      `json:"hostname"`
	Organization   *orgNode     `json:"organization"`
	CurrentRelease *releaseNode `json:"currentRelease"`
}

type orgNode struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type releaseNode struct {
	ID          string  `json:"id"`
	Version     int     `json:"version"`
	Status      string  `json:"status"`
	Description *string `json:"description"`
	CreatedAt   *string `json:"createdAt"`
}

type machineNode struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	State      string             `json:"state"`
	Region     string             `json:"region"`
	InstanceID *string            `json:"instanceId"`
	PrivateIP  *string            `json:"privateIp"`
	Config     *machineConfigNode `json:"config"`
}

type machineConfigNode struct {
	Size  *string `json:"size"`
	Image *string `json:"image"`
}

type allocationNode struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Region  string `json:"region"`
	Version *int   `json:"version"`
}

type regionNode struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	GatewayAvailable bool   `json:"gatewayAvailable"`
}

type secretNode struct {
	Name      string `json:"name"`
	Digest    string `json:"digest"`
	CreatedAt string `json:"createdAt"`
}

type machineNodes struct {
	Nodes []*machineNode `json:"nodes"`
}

// viewerResponse decodes viewerQuery.
type viewerResponse struct {
	Viewer struct {
		ID string `json:"id"`
	} `json:"viewer"`
}

// appsResponse decodes appsQuery.
type appsResponse struct {
	Apps struct {
		Nodes []*appNode `json:"nodes"`
	} `json:"apps"`
}

// appStatusResponse decodes appStatusQuery.
type appStatusResponse struct {
	App *struct {
		appNode
		Machines    machineNodes      `json:"machines"`
		Allocations []*allocationNode `json:"allocations"`
	} `json:"app"`
}

// machinesResponse decodes machinesQuery.
type machinesResponse struct {
	App *struct {
		Machines machineNodes `json:"machines"`
	} `json:"app"`
}

// regionsResponse decodes regionsQuery.
type regionsResponse struct {
	Platform struct {
		Regions []*regionNode `json:"regions"`
	} `json:"platform"`
}

// secretsResponse decodes secretsQuery.
type secretsResponse struct {
	App *struct {
		Secrets []*secretNode `json:"secrets"`
	} `json:"app"`
}

// setSecretsResponse decodes setSecretsMutation.
type setSecretsResponse struct {
	SetSecrets struct {
		Release *releaseNode `json:"release"`
	} `json:"setSecrets"`
}

// unsetSecretsResponse decodes unsetSecretsMutation.
type unsetSecretsResponse struct {
	UnsetSecrets struct {
		Release *releaseNode `json:"release"`
	} `json:"unsetSecrets"`
}

// restartAppResponse decodes restartAppMutation.
type restartAppResponse struct {
	RestartApp struct {
		App *appNode `json:"app"`
	} `json:"restartApp"`
}

// startMachineResponse decodes startMachineMutation.
type startMachineResponse struct {
	StartMachine struct {
		Machine *machineNode `json:"machine"`
	} `json:"startMachine"`
}

// stopMachineResponse decodes stopMachineMutation.
type stopMachineResponse struct {
	StopMachine struct {
		Machine *machineNode `json:"machine"`
	} `json:"stopMachine"`
}
