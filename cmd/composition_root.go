package cmd

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"logistic/internal/adapters/out/carriers/cdek"
	"logistic/internal/adapters/out/carriers/dellin"
	"logistic/internal/adapters/out/carriers/pecom"
	"logistic/internal/adapters/out/dadata"
	"logistic/internal/adapters/out/postgres/addressrepo"
	"logistic/internal/adapters/out/postgres/credentialrepo"
	"logistic/internal/adapters/out/redis/locationcache"
	"logistic/internal/core/application/usecases/commands"
	"logistic/internal/core/application/usecases/queries"
	"logistic/internal/core/ports"
	"logistic/internal/jobs"
)

// CompositionRoot wires every adapter and handler together. All
// dependencies are constructed once and shared.
type CompositionRoot struct {
	logger *zap.Logger

	credentials ports.CredentialStore
	locations   ports.LocationCache
	cleaner     ports.AddressCleaner

	cdekAdapter   *cdek.Adapter
	dellinAdapter *dellin.Adapter
	pecomAdapter  *pecom.Adapter
}

// NewCompositionRoot builds the object graph from configuration and the
// already opened infrastructure connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *zap.Logger,
) (*CompositionRoot, error) {
	credentials := credentialrepo.NewGormCredentialRepository(gormDB)
	locations := locationcache.New(redisClient)
	addressCache := addressrepo.NewGormAddressCleanRepository(gormDB)

	cleaner := dadata.NewClient(
		config.DadataBaseURL, config.DadataToken, config.DadataSecret, addressCache, logger)

	terminals, err := dellin.NewTerminalDirectory(config.DellinTerminalsPath)
	if err != nil {
		return nil, fmt.Errorf("load terminals directory: %w", err)
	}

	return &CompositionRoot{
		logger:        logger,
		credentials:   credentials,
		locations:     locations,
		cleaner:       cleaner,
		cdekAdapter:   cdek.NewAdapter(config.CdekBaseURL, credentials, locations, logger),
		dellinAdapter: dellin.NewAdapter(config.DellinBaseURL, credentials, locations, terminals, logger),
		pecomAdapter:  pecom.NewAdapter(config.PecomCalcURL, config.PecomTownsURL, locations, logger),
	}, nil
}

// CarrierAdapters returns the adapters in the order quotes are merged.
func (c *CompositionRoot) CarrierAdapters() []ports.CarrierAdapter {
	return []ports.CarrierAdapter{c.cdekAdapter, c.dellinAdapter, c.pecomAdapter}
}

func (c *CompositionRoot) CreateCalculateDeliveryQueryHandler() queries.CalculateDeliveryQueryHandler {
	return queries.NewCalculateDeliveryQueryHandler(c.cleaner, c.CarrierAdapters(), c.logger)
}

func (c *CompositionRoot) CreateSetCredentialCommandHandler() commands.SetCredentialCommandHandler {
	return commands.NewSetCredentialCommandHandler(c.credentials)
}

func (c *CompositionRoot) CreateInvalidateLocationCommandHandler() commands.InvalidateLocationCommandHandler {
	return commands.NewInvalidateLocationCommandHandler(c.locations)
}

// CreateJobManager wires the background jobs: hourly token warmup for the
// OAuth carrier and the nightly terminals reload.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	tokenSources := map[string]jobs.TokenSource{
		cdek.ServiceName: c.cdekAdapter.TokenProvider(),
	}
	return jobs.NewJobManager(tokenSources, c.dellinAdapter.Terminals(), c.logger)
}
