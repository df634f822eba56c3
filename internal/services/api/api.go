// Package api provides the HTTP API for the application
package api

import (
	"context"
	"os"

	"recordkeeper/internal/core/access"
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/platform/config"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/logger"
	phttp "recordkeeper/internal/platform/net/http"
	"recordkeeper/internal/platform/store"

	"recordkeeper/internal/modkit"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/modkit/swaggerkit"

	docsmod "recordkeeper/internal/services/api/documents/module"
	metamod "recordkeeper/internal/services/api/meta/module"
	orgmod "recordkeeper/internal/services/api/organization/module"
	roomsmod "recordkeeper/internal/services/api/rooms/module"
	storagemod "recordkeeper/internal/services/api/storage/module"
	auditmod "recordkeeper/internal/services/audit/module"
	ownermod "recordkeeper/internal/services/ownership/module"
)

// Options are the API options
type Options struct {
	// Config is the root config; modules pick their own prefixes from it
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Tokens         httpkit.TokenFunc
	EnableSwagger  bool
	EnableProfiler bool
}

// API is the mounted application
type API struct {
	Bus   *mediator.Mediator
	audit *auditmod.Module
}

// Run drives background writers until ctx ends
func (a *API) Run(ctx context.Context) error { return a.audit.Run(ctx) }

// Mount builds the pipeline, installs every module's registrations and mounts the routes
func Mount(r phttp.Router, opt Options) (*API, error) {
	if opt.Store == nil || opt.Store.PG == nil {
		return nil, perr.New(perr.ErrorCodeInternal, "api: postgres store is required")
	}
	if opt.Tokens == nil {
		return nil, perr.New(perr.ErrorCodeInternal, "api: token parser is required")
	}
	l := opt.Logger
	if l == nil {
		l = logger.Named("api")
	}

	policy, err := loadPolicy(opt.Config.Prefix("AUTHZ_"))
	if err != nil {
		return nil, err
	}

	deps := modkit.Deps{
		Log: *l,
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	audit := auditmod.New(deps)
	reg := mediator.NewRegistry()
	bus := mediator.New(reg,
		mediator.WithLogger(logger.Named("mediator")),
		mediator.WithAuditor(modkit.MustPortsOf[auditmod.Ports](audit).Auditor),
	)
	deps.Bus = bus

	owners := ownermod.New(deps)
	reg.Install(access.New(modkit.MustPortsOf[ownermod.Ports](owners).Reader, policy))

	public := []modkit.Module{
		metamod.New(deps),
	}
	protected := []modkit.Module{
		orgmod.New(deps),
		roomsmod.New(deps),
		storagemod.New(deps),
		docsmod.New(deps),
	}
	for _, m := range protected {
		reg.Install(modkit.MustPortsOf[mediator.Registrar](m))
	}

	if orphans := reg.Orphans(); len(orphans) > 0 {
		l.Warn().Strs("requests", orphans).Msg("requests registered without a handler")
	}
	l.Info().Int("requests", len(reg.Requests())).Msg("pipeline ready")

	auth := httpkit.NewPortFunc(opt.Tokens)

	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config.Prefix("CORE_API_")), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range public {
			m.MountRoutes(api)
		}
		httpkit.Protected(api, auth, func(pr httpkit.Router) {
			for _, m := range protected {
				m.MountRoutes(pr)
			}
		})
	})
	swaggerkit.DescribeRoutes(r)

	return &API{Bus: bus, audit: audit}, nil
}

// loadPolicy reads AUTHZ_POLICY_FILE when set, else the embedded policies
func loadPolicy(cfg config.Conf) (*access.Policy, error) {
	path := cfg.MayString("POLICY_FILE", "")
	if path == "" {
		return access.NewPolicy(nil)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInternal, "api: read policy file %s", path)
	}
	return access.NewPolicy(src)
}
