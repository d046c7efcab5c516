// Package server wires the full gateway: configuration, observability,
// persistence, chain and blob clients, application services, and the HTTP and
// gRPC surfaces. It is shared by the server binary and the CLI's serve
// command.
package server

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	appservice "github.com/manolaz/mosaic/internal/application/service"
	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/domain/repository"
	domainservice "github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/internal/indexer"
	"github.com/manolaz/mosaic/internal/infrastructure/audit"
	"github.com/manolaz/mosaic/internal/infrastructure/blobstore"
	"github.com/manolaz/mosaic/internal/infrastructure/chain"
	"github.com/manolaz/mosaic/internal/infrastructure/crypto"
	"github.com/manolaz/mosaic/internal/infrastructure/kms"
	"github.com/manolaz/mosaic/internal/infrastructure/monitoring"
	"github.com/manolaz/mosaic/internal/infrastructure/persistence/gormdb"
	"github.com/manolaz/mosaic/internal/infrastructure/persistence/redis"
	"github.com/manolaz/mosaic/internal/infrastructure/wallet"
	grpciface "github.com/manolaz/mosaic/internal/interfaces/grpc"
	httpiface "github.com/manolaz/mosaic/internal/interfaces/http"
	"github.com/manolaz/mosaic/internal/interfaces/http/handlers"
	"github.com/manolaz/mosaic/pkg/logger"
)

// Run builds the gateway from configuration and serves until ctx is canceled.
// version appears in the health endpoint.
func Run(ctx context.Context, cfg *config.Config, appLogger logger.Logger, version string) error {
	tracing, err := monitoring.NewTracingManager(&cfg.Tracing, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracing.Shutdown(shutdownCtx)
	}()

	metrics := monitoring.NewMetrics()

	db, err := gormdb.Open(&cfg.Database, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	var blobRefs repository.BlobRefRepository
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis, appLogger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		blobRefs = redis.NewBlobRefStore(redisClient, appLogger)
	} else {
		blobRefs = gormdb.NewBlobRefRepository(db, appLogger)
	}
	eventIndex := gormdb.NewEventIndexRepository(db)

	signer, err := wallet.NewKeystoreSigner(&cfg.Wallet, appLogger)
	if err != nil {
		return fmt.Errorf("failed to load signing key: %w", err)
	}

	chainClient := chain.NewRPCClient(&cfg.Chain, signer, appLogger)
	blobs := blobstore.NewWalrusClient(&cfg.Walrus, appLogger)

	var custodian domainservice.KeyCustodian
	if cfg.Vault.Enabled {
		vaultCustodian, err := kms.NewVaultCustodian(&cfg.Vault, appLogger)
		if err != nil {
			return fmt.Errorf("failed to connect to vault: %w", err)
		}
		custodian = vaultCustodian
	}

	var auditSvc domainservice.AuditService
	if cfg.Kafka.Enabled {
		producer := audit.NewKafkaProducer(&cfg.Kafka, appLogger)
		defer producer.Close()
		auditSvc = producer
	} else {
		auditSvc = audit.NopAuditService{}
	}

	checkInManager, err := crypto.NewCheckInManager(&cfg.CheckIn)
	if err != nil {
		return fmt.Errorf("failed to initialize check-in manager: %w", err)
	}

	cipher := crypto.NewTicketCipher()

	eventSvc := appservice.NewEventAppService(chainClient, signer, auditSvc, appLogger, cfg.Chain.PackageID)
	ticketSvc := appservice.NewTicketAppService(chainClient, signer, cipher, blobs, custodian, auditSvc, appLogger, cfg.Chain.PackageID)
	nftSvc := appservice.NewNFTAppService(chainClient, signer, blobs, blobRefs, auditSvc, appLogger, cfg.Chain.PackageID)
	profileSvc := appservice.NewProfileAppService(blobs, blobRefs, appLogger)
	marketplaceSvc := appservice.NewMarketplaceQueryService(eventIndex, chainClient, appLogger)

	router := httpiface.NewRouter(
		cfg,
		appLogger,
		handlers.NewHealthHandler(version),
		handlers.NewEventHandler(eventSvc, marketplaceSvc),
		handlers.NewTicketHandler(ticketSvc),
		handlers.NewNFTHandler(nftSvc),
		handlers.NewProfileHandler(profileSvc),
		handlers.NewCheckInHandler(checkInManager, metrics),
	)

	healthServer := grpciface.NewHealthServer(&cfg.Server, appLogger)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(router.Start)
	group.Go(healthServer.Start)

	if cfg.Indexer.Enabled {
		eventIndexer := indexer.New(chainClient, eventIndex, metrics, &cfg.Indexer, appLogger, cfg.Chain.PackageID)
		group.Go(func() error {
			return eventIndexer.Run(groupCtx)
		})
	}

	group.Go(func() error {
		<-groupCtx.Done()
		healthServer.SetNotServing()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := router.Stop(shutdownCtx); err != nil {
			appLogger.Error(shutdownCtx, "http shutdown failed", err)
		}
		healthServer.Stop()
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}
	appLogger.Info(context.Background(), "server stopped")
	return nil
}
