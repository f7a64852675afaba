package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	api "topup/internal/adapters/in/http"
	"topup/internal/adapters/out/blobstore"
	"topup/internal/adapters/out/pdf"
	"topup/internal/adapters/out/postgres"
	"topup/internal/adapters/out/postgres/catalogrepo"
	"topup/internal/adapters/out/postgres/userrepo"
	"topup/internal/core/application/usecases/commands"
	"topup/internal/core/application/usecases/queries"
	"topup/internal/core/domain/model/catalog"
	"topup/internal/core/domain/model/identity"
	"topup/internal/core/domain/model/kernel"
	"topup/internal/jobs"
	"topup/internal/pkg/clock"
	"topup/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config       Config
	gormDB       *gorm.DB
	uowFactory   postgres.GormUnitOfWorkFactory
	catalog      *catalogrepo.GormCatalogRepository
	users        *userrepo.GormUserRepository
	proofStore   *blobstore.FilesystemStore
	receiptStore *blobstore.FilesystemStore
	clock        clock.Clock
	logger       *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	proofStore, err := blobstore.NewFilesystemStore(config.UploadDir)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("upload dir: %w", err)
	}
	receiptStore, err := blobstore.NewFilesystemStore(config.ReceiptDir)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("receipt dir: %w", err)
	}

	return CompositionRoot{
		config:       config,
		gormDB:       gormDB,
		uowFactory:   *postgres.NewGormUnitOfWorkFactory(gormDB),
		catalog:      catalogrepo.NewGormCatalogRepository(gormDB),
		users:        userrepo.NewGormUserRepository(gormDB),
		proofStore:   proofStore,
		receiptStore: receiptStore,
		clock:        clock.NewSystem(),
		logger:       logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAttachProofCommandHandler() commands.AttachProofCommandHandler {
	return commands.NewAttachProofCommandHandler(c.orderUoWFactory(), c.proofStore, c.config.MaxProofBytes, c.logger)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateReconcileProofsCommandHandler() commands.ReconcileProofsCommandHandler {
	return commands.NewReconcileProofsCommandHandler(c.orderUoWFactory(), c.proofStore, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetCatalogQueryHandler() queries.GetCatalogQueryHandler {
	return queries.NewGetCatalogQueryHandler(c.catalog)
}

func (c *CompositionRoot) CreateGetBestSellersQueryHandler() queries.GetBestSellersQueryHandler {
	return queries.NewGetBestSellersQueryHandler(c.gormDB, c.catalog)
}

func (c *CompositionRoot) CreateGetBuyerOrdersQueryHandler() queries.GetBuyerOrdersQueryHandler {
	return queries.NewGetBuyerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGenerateReceiptQueryHandler() queries.GenerateReceiptQueryHandler {
	return queries.NewGenerateReceiptQueryHandler(
		c.CreateGetOrderQueryHandler(),
		c.proofStore,
		pdf.NewReceiptRenderer(pdf.WithLocation(c.config.ReceiptLocation)),
		c.receiptStore,
		c.logger,
	)
}

func (c *CompositionRoot) CreateAuthenticator() *api.Authenticator {
	return api.NewAuthenticator(c.users, bcrypt.DefaultCost)
}

func (c *CompositionRoot) CreateHTTPServer() *api.Server {
	return api.NewServer(
		api.UseCases{
			CreateOrder:     c.CreateCreateOrderCommandHandler(),
			AttachProof:     c.CreateAttachProofCommandHandler(),
			ConfirmOrder:    c.CreateConfirmOrderCommandHandler(),
			DeleteOrder:     c.CreateDeleteOrderCommandHandler(),
			GetCatalog:      c.CreateGetCatalogQueryHandler(),
			GetBestSellers:  c.CreateGetBestSellersQueryHandler(),
			GetBuyerOrders:  c.CreateGetBuyerOrdersQueryHandler(),
			GetAllOrders:    c.CreateGetAllOrdersQueryHandler(),
			GetOrder:        c.CreateGetOrderQueryHandler(),
			GenerateReceipt: c.CreateGenerateReceiptQueryHandler(),
		},
		c.CreateAuthenticator(),
		api.NewCookieSessionManager(c.config.SessionKey, c.config.CookieSecure, c.logger),
		c.config.MaxProofBytes,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewProofReconciliationJob(
			c.CreateReconcileProofsCommandHandler(),
			c.config.ReconcileSchedule,
			c.config.OrphanGrace,
			c.logger,
		),
	)
}

// SeedAdmin creates the configured admin account when it does not exist yet.
func (c *CompositionRoot) SeedAdmin(ctx context.Context) error {
	if c.config.AdminUsername == "" {
		return nil
	}
	_, err := c.CreateAuthenticator().Register(ctx, c.config.AdminUsername, "Administrator", c.config.AdminPassword, identity.RoleAdmin)
	if errors.Is(err, errs.ErrConflict) {
		return nil
	}
	if err != nil {
		return err
	}
	c.logger.InfoContext(ctx, "Admin account created", "username", c.config.AdminUsername)
	return nil
}

type catalogSeedEntry struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Image string `json:"image"`
}

// SeedCatalog adds the entries of the JSON seed file. Entries whose name is
// already in the catalog are left untouched.
func (c *CompositionRoot) SeedCatalog(ctx context.Context) error {
	if c.config.CatalogSeedPath == "" {
		return nil
	}

	raw, err := os.ReadFile(c.config.CatalogSeedPath)
	if err != nil {
		return fmt.Errorf("read catalog seed: %w", err)
	}
	var seed []catalogSeedEntry
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse catalog seed: %w", err)
	}

	for _, item := range seed {
		price, err := kernel.NewPrice(item.Price)
		if err != nil {
			return fmt.Errorf("catalog seed %q: %w", item.Name, err)
		}
		entry, err := catalog.NewEntry(item.Name, price, item.Image)
		if err != nil {
			return fmt.Errorf("catalog seed %q: %w", item.Name, err)
		}
		if err := c.catalog.Add(ctx, entry); err != nil {
			return err
		}
	}

	c.logger.InfoContext(ctx, "Catalog seeded", "entries", len(seed))
	return nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
