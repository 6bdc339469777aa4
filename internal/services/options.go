package services

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/spanner"

	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/contracts"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/domain"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/projection"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/check_favorite"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/get_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_events"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_favorites"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/list_materials"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/listing"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/queries/search_materials"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/repo"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/repo/memory"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/delete_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/moderate_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/toggle_favorite"
	"github.com/niuTTu2/decoration-sharing-api/internal/app/material/usecases/upload_material"
	"github.com/niuTTu2/decoration-sharing-api/internal/blob"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/clock"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/committer"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/config"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/logger"
	"github.com/niuTTu2/decoration-sharing-api/internal/pkg/paging"
	httptransport "github.com/niuTTu2/decoration-sharing-api/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Server        *httptransport.Server
	Identity      *httptransport.IdentityResolver
}

// stores groups one backend's implementations of the store contracts.
type stores struct {
	materials  contracts.MaterialRepository
	reads      contracts.ReadModel
	favorites  contracts.FavoriteStore
	categories contracts.CategoryStore
	users      contracts.UserStore
	events     contracts.EventsReadModel
	seed       func(ctx context.Context, categories []domain.Category, users []domain.User) error
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg *config.Config, log *logger.Logger) (*ServiceOptions, error) {
	opts := &ServiceOptions{}
	clk := clock.NewRealClock()

	// 1. Initialize storage
	var st *stores
	switch cfg.Store.Driver {
	case config.DriverSpanner:
		client, err := spanner.NewClient(ctx, cfg.Store.SpannerDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		opts.SpannerClient = client
		st = spannerStores(client, clk)
	default:
		st = memoryStores(clk)
	}
	if cfg.Store.SeedDemo {
		if err := st.seed(ctx, DemoCategories, DemoUsers); err != nil {
			opts.Close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		log.Info("demo data seeded", "categories", len(DemoCategories), "users", len(DemoUsers))
	}

	// 2. Initialize file storage
	var (
		blobs contracts.BlobStorage
		files http.Handler
	)
	switch cfg.Blob.Driver {
	case config.DriverS3:
		s3Store, err := blob.NewS3Store(ctx, cfg.Blob.S3, cfg.Blob.PublicBaseURL)
		if err != nil {
			opts.Close()
			return nil, err
		}
		blobs = s3Store
	default:
		memStore := blob.NewMemoryStore(cfg.Blob.PublicBaseURL)
		blobs, files = memStore, memStore
	}
	thumbnailer := blob.NewThumbnailer(cfg.Blob.ThumbnailWidth)

	// 3. Create query use cases (read operations)
	limits := paging.Limits{DefaultSize: cfg.Paging.DefaultSize, MaxSize: cfg.Paging.MaxSize}
	shaper := projection.NewShaper(st.favorites, log)
	lister := listing.NewLister(st.reads, shaper, limits, log)

	listMaterialsQuery := list_materials.NewQuery(lister)
	searchMaterialsQuery := search_materials.NewQuery(lister)
	listFavoritesQuery := list_favorites.NewQuery(lister)
	getMaterialQuery := get_material.NewQuery(st.reads, st.materials, shaper, log)
	checkFavoriteQuery := check_favorite.NewQuery(st.reads, st.favorites)
	listEventsQuery := list_events.NewQuery(st.events)

	// 4. Create command use cases (write operations)
	uploadUseCase := upload_material.NewInteractor(
		st.materials, st.users, st.categories, blobs, thumbnailer,
		upload_material.Policy{MaxBytes: cfg.Blob.MaxBytes, AllowedTypes: cfg.Blob.AllowedTypes},
		clk, log,
	)
	deleteUseCase := delete_material.NewInteractor(st.materials, blobs, clk, log)
	moderateUseCase := moderate_material.NewInteractor(st.materials, clk, log)
	toggleUseCase := toggle_favorite.NewInteractor(st.reads, st.favorites, log)

	// 5. Create HTTP server
	identity := httptransport.NewIdentityResolver(cfg.Auth.JWTSecret, st.users)
	opts.Identity = identity
	opts.Server = httptransport.NewServer(httptransport.Deps{
		ListMaterials:    listMaterialsQuery,
		SearchMaterials:  searchMaterialsQuery,
		ListFavorites:    listFavoritesQuery,
		GetMaterial:      getMaterialQuery,
		CheckFavorite:    checkFavoriteQuery,
		ListEvents:       listEventsQuery,
		UploadMaterial:   uploadUseCase,
		DeleteMaterial:   deleteUseCase,
		ModerateMaterial: moderateUseCase,
		ToggleFavorite:   toggleUseCase,
		Categories:       st.categories,
		Identity:         identity,
		Metrics:          httptransport.NewMetrics(),
		Files:            files,
		AdminQueueSize:   cfg.Paging.AdminQueueSize,
		MaxUploadBytes:   cfg.Blob.MaxBytes,
	}, log)

	return opts, nil
}

func memoryStores(clk clock.Clock) *stores {
	s := memory.NewStore(clk)
	return &stores{
		materials:  s,
		reads:      s,
		favorites:  s,
		categories: s,
		users:      s,
		events:     s,
		seed: func(ctx context.Context, categories []domain.Category, users []domain.User) error {
			for _, c := range categories {
				s.AddCategory(c)
			}
			for _, u := range users {
				s.AddUser(u)
			}
			return nil
		},
	}
}

func spannerStores(client *spanner.Client, clk clock.Clock) *stores {
	comm := committer.NewCommitter(client)
	categories := repo.NewCategoryRepo(client)
	users := repo.NewUserRepo(client)
	return &stores{
		materials:  repo.NewMaterialRepo(client, comm, repo.NewOutboxRepo()),
		reads:      repo.NewReadModel(client),
		favorites:  repo.NewFavoriteStore(client, comm, clk),
		categories: categories,
		users:      users,
		events:     repo.NewEventsReadModel(client),
		seed: func(ctx context.Context, cs []domain.Category, us []domain.User) error {
			for _, c := range cs {
				if err := categories.Save(ctx, c); err != nil {
					return err
				}
			}
			for _, u := range us {
				if err := users.Save(ctx, u); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// Handler returns the HTTP handler.
func (s *ServiceOptions) Handler() http.Handler {
	return s.Server.Routes()
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
