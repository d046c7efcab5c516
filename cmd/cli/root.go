// Package cli implements the mosaic-admin command tree. Commands wire the
// application services directly, without going through the HTTP gateway, so
// operators can seed chains and inspect state from a shell.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appservice "github.com/manolaz/mosaic/internal/application/service"
	"github.com/manolaz/mosaic/internal/config"
	"github.com/manolaz/mosaic/internal/infrastructure/audit"
	"github.com/manolaz/mosaic/internal/infrastructure/blobstore"
	"github.com/manolaz/mosaic/internal/infrastructure/chain"
	"github.com/manolaz/mosaic/internal/infrastructure/crypto"
	"github.com/manolaz/mosaic/internal/infrastructure/monitoring"
	"github.com/manolaz/mosaic/internal/infrastructure/persistence/gormdb"
	"github.com/manolaz/mosaic/internal/infrastructure/wallet"
	"github.com/manolaz/mosaic/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mosaic-admin",
	Short: "Admin CLI for the mosaic ticketing gateway",
	Long: `mosaic-admin performs operator tasks against the ticketing chain and
blob store: creating events, minting tickets, importing seed data, and
inspecting profiles. It reads the same configuration as the gateway.`,
	SilenceUsage: true,
}

// Execute runs the command tree and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles the services a command may need. Clients are constructed
// eagerly but issue no network calls until a command uses them.
type app struct {
	cfg         *config.Config
	log         logger.Logger
	signer      *wallet.KeystoreSigner
	events      *appservice.EventAppService
	tickets     *appservice.TicketAppService
	importer    *appservice.ImportAppService
	profiles    *appservice.ProfileAppService
	marketplace *appservice.MarketplaceQueryService
}

func newApp() (*app, error) {
	quiet, err := monitoring.NewZapLogger(&config.LogConfig{Level: "warn"})
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(quiet)
	if err != nil {
		return nil, err
	}

	signer, err := wallet.NewKeystoreSigner(&cfg.Wallet, quiet)
	if err != nil {
		return nil, err
	}

	db, err := gormdb.Open(&cfg.Database, quiet)
	if err != nil {
		return nil, err
	}
	blobRefs := gormdb.NewBlobRefRepository(db, quiet)
	eventIndex := gormdb.NewEventIndexRepository(db)

	chainClient := chain.NewRPCClient(&cfg.Chain, signer, quiet)
	blobs := blobstore.NewWalrusClient(&cfg.Walrus, quiet)
	cipher := crypto.NewTicketCipher()
	auditSvc := audit.NopAuditService{}

	events := appservice.NewEventAppService(chainClient, signer, auditSvc, quiet, cfg.Chain.PackageID)
	return &app{
		cfg:         cfg,
		log:         quiet,
		signer:      signer,
		events:      events,
		tickets:     appservice.NewTicketAppService(chainClient, signer, cipher, blobs, nil, auditSvc, quiet, cfg.Chain.PackageID),
		importer:    appservice.NewImportAppService(events, blobs, quiet),
		profiles:    appservice.NewProfileAppService(blobs, blobRefs, quiet),
		marketplace: appservice.NewMarketplaceQueryService(eventIndex, chainClient, quiet),
	}, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
