package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/flyops/fly-mcp/internal/fly"
	"github.com/flyops/fly-mcp/internal/safety"
	"go.uber.org/zap"
)

// Version is the plugin version reported to the host.
const Version = "1.0.0"

// startupPingRetries bounds how many times OnStart re-issues the identity
// query before giving up. Only reads are ever retried.
const startupPingRetries = 3

// FlyAPI is the set of typed Fly.io operations FlyService dispatches to.
// *fly.API is the production implementation.
type FlyAPI interface {
	Ping(ctx context.Context) (bool, error)
	ListApps(ctx context.Context, limit int) ([]fly.App, error)
	GetAppStatus(ctx context.Context, appName string) (*fly.AppStatus, error)
	ListMachines(ctx context.Context, appName string) ([]fly.Machine, error)
	GetUser(ctx context.Context) (map[string]any, error)
	ListRegions(ctx context.Context) ([]fly.Region, error)
	ListSecrets(ctx context.Context, appName string) ([]fly.Secret, error)
	SetSecret(ctx context.Context, appName, key, value string) (*fly.Release, error)
	DeleteSecret(ctx context.Context, appName, key string) (*fly.Release, error)
	RestartApp(ctx context.Context, appName string) (*fly.App, error)
	ScaleMachine(ctx context.Context, appName, machineID, action string) (*fly.Machine, error)
}

// FlyService implements Service on top of a FlyAPI. The safety filter, when
// non-nil, gates the mutating methods (restart, secrets set/delete, scale) by
// app name.
type FlyService struct {
	api    FlyAPI
	log    *zap.Logger
	filter *safety.Filter
}

// NewFlyService returns a FlyService. A nil logger is replaced with a no-op
// logger; a nil filter allows every app.
func NewFlyService(api FlyAPI, logger *zap.Logger, filter *safety.Filter) *FlyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FlyService{
		api:    api,
		log:    logger,
		filter: filter,
	}
}

// Name returns the plugin name used by the host for method prefixes.
func (s *FlyService) Name() string { return "fly" }

// Version returns the plugin version.
func (s *FlyService) Version() string { return Version }

// Dispatch routes a named method to its implementation. Methods are accepted
// both bare ("apps") and prefixed ("fly.apps"). Parameter validation happens
// before any network call.
func (s *FlyService) Dispatch(ctx context.Context, method string, params map[string]any) (any, error) {
	start := time.Now()

	var (
		result any
		err    error
	)

	switch strings.TrimPrefix(method, "fly.") {
	case "health":
		result, err = s.health(ctx)
	case "apps":
		result, err = s.listApps(ctx, params)
	case "status":
		result, err = s.appStatus(ctx, params)
	case "machines":
		result, err = s.listMachines(ctx, params)
	case "user":
		result, err = s.api.GetUser(ctx)
	case "regions":
		result, err = s.listRegions(ctx)
	case "secrets":
		result, err = s.handleSecrets(ctx, params)
	case "restart":
		result, err = s.restartApp(ctx, params)
	case "scale":
		result, err = s.scaleMachine(ctx, params)
	default:
		err = &UnknownMethodError{Method: method}
	}

	if err != nil {
		s.log.Warn("dispatch failed",
			zap.String("method", method),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	s.log.Debug("dispatch ok",
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (s *FlyService) health(ctx context.Context) (any, error) {
	ok, err := s.api.Ping(ctx)
	if err != nil {
		return nil, err
	}

	status := "healthy"
	if !ok {
		status = "unhealthy"
	}
	return map[string]any{
		"status":        status,
		"api_connected": ok,
		"version":       Version,
	}, nil
}

func (s *FlyService) listApps(ctx context.Context, params map[string]any) (any, error) {
	limit := intParam(params, "limit", 25)

	apps, err := s.api.ListApps(ctx, limit)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"apps":  apps,
		"count": len(apps),
	}, nil
}

func (s *FlyService) appStatus(ctx context.Context, params map[string]any) (any, error) {
	appName, err := requireStr(params, "app")
	if err != nil {
		return nil, err
	}
	return s.api.GetAppStatus(ctx, appName)
}

func (s *FlyService) listMachines(ctx context.Context, params map[string]any) (any, error) {
	appName, err := requireStr(params, "app")
	if err != nil {
		return nil, err
	}

	machines, err := s.api.ListMachines(ctx, appName)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"machines": machines,
		"count":    len(machines),
	}, nil
}

func (s *FlyService) listRegions(ctx context.Context) (any, error) {
	regions, err := s.api.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"regions": regions,
		"count":   len(regions),
	}, nil
}

func (s *FlyService) handleSecrets(ctx context.Context, params map[string]any) (any, error) {
	appName, err := requireStr(params, "app")
	if err != nil {
		return nil, err
	}

	action, ok := strParam(params, "action")
	if !ok {
		action = "list"
	}

	switch action {
	case "list":
		secrets, err := s.api.ListSecrets(ctx, appName)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"secrets": secrets,
			"count":   len(secrets),
		}, nil

	case "set":
		key, ok := strParam(params, "key")
		if !ok {
			return nil, &ParamError{Name: "key", Context: "for action=set"}
		}
		// The value must be provided but may be empty.
		value, ok := optStr(params, "value")
		if !ok {
			return nil, &ParamError{Name: "value", Context: "for action=set"}
		}
		if err := s.checkFilter(appName); err != nil {
			return nil, err
		}

		release, err := s.api.SetSecret(ctx, appName, key, value)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"set":     true,
			"release": release,
		}, nil

	case "delete":
		key, ok := strParam(params, "key")
		if !ok {
			return nil, &ParamError{Name: "key", Context: "for action=delete"}
		}
		if err := s.checkFilter(appName); err != nil {
			return nil, err
		}

		release, err := s.api.DeleteSecret(ctx, appName, key)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"deleted": true,
			"release": release,
		}, nil

	default:
		return nil, fmt.Errorf("unknown action: %q, valid actions are: list, set, delete", action)
	}
}

func (s *FlyService) restartApp(ctx context.Context, params map[string]any) (any, error) {
	appName, err := requireStr(params, "app")
	if err != nil {
		return nil, err
	}
	if err := s.checkFilter(appName); err != nil {
		return nil, err
	}

	app, err := s.api.RestartApp(ctx, appName)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"restarted": true,
		"app":       app,
	}, nil
}

func (s *FlyService) scaleMachine(ctx context.Context, params map[string]any) (any, error) {
	appName, err := requireStr(params, "app")
	if err != nil {
		return nil, err
	}
	machineID, err := requireStr(params, "machine_id")
	if err != nil {
		return nil, err
	}
	action, err := requireStr(params, "action")
	if err != nil {
		return nil, err
	}
	if action != fly.ScaleActionStart && action != fly.ScaleActionStop {
		return nil, fmt.Errorf("unknown action: %q, valid actions are: start, stop", action)
	}
	if err := s.checkFilter(appName); err != nil {
		return nil, err
	}

	machine, err := s.api.ScaleMachine(ctx, appName, machineID, action)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"scaled":  true,
		"machine": machine,
	}, nil
}

// checkFilter rejects mutating operations against apps blocked by the safety
// policy.
func (s *FlyService) checkFilter(appName string) error {
	if s.filter == nil || s.filter.IsAllowed(appName) {
		return nil
	}
	return fmt.Errorf("app %q is blocked by safety policy", appName)
}

// OnStart verifies connectivity to the Fly.io API with a bounded exponential
// backoff. Failures are logged and returned for the host to report; the host
// is expected to keep running either way.
func (s *FlyService) OnStart(ctx context.Context) error {
	s.log.Info("verifying Fly.io API connectivity")

	var connected bool
	op := func() error {
		ok, err := s.api.Ping(ctx)
		if err != nil {
			return err
		}
		connected = ok
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), startupPingRetries),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		s.log.Error("failed to connect to Fly.io API", zap.Error(err))
		return fmt.Errorf("verify connectivity: %w", err)
	}

	if !connected {
		s.log.Warn("Fly.io API returned an empty viewer id")
		return nil
	}

	s.log.Info("Fly.io API connection verified")
	return nil
}

// HealthCheck pings the upstream once and reports the fly_api subsystem as
// healthy with its observed latency, or unhealthy with the failure reason.
// Connectivity failures never propagate as errors from this hook.
func (s *FlyService) HealthCheck(ctx context.Context) map[string]HealthStatus {
	checks := make(map[string]HealthStatus, 1)

	start := time.Now()
	ok, err := s.api.Ping(ctx)

	switch {
	case err != nil:
		checks["fly_api"] = Unhealthy(err.Error())
	case !ok:
		checks["fly_api"] = Unhealthy("empty viewer id")
	default:
		checks["fly_api"] = Healthy(time.Since(start))
	}

	return checks
}
