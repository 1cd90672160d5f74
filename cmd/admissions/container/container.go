package container

import (
	"github.com/unistat/admissions/cmd/admissions/models"
	"github.com/unistat/admissions/cmd/admissions/repository"
	"github.com/unistat/admissions/cmd/admissions/service"
	"github.com/unistat/admissions/common/bootstrap"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components
	Programs   []models.Program

	// Repositories
	ApplicantRepo *repository.ApplicantRepository
	HistoryRepo   *repository.HistoryRepository

	// Services
	AllocationService *service.AllocationService
	Scheduler         *service.Scheduler
	ImportService     *service.ImportService
	StatisticsService *service.StatisticsService
	ApplicantService  *service.ApplicantService
	HistoryService    *service.HistoryService
	AdminService      *service.AdminService
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	// The program table is plain configuration handed to the engine,
	// never package-level state
	programs := make([]models.Program, 0, len(components.Config.Admissions.Programs))
	for _, p := range components.Config.Admissions.Programs {
		programs = append(programs, models.Program{
			Code:     p.Code,
			Name:     p.Name,
			Capacity: p.Capacity,
		})
	}

	// Initialize repositories
	applicantRepo := repository.NewApplicantRepository(components.DB)
	historyRepo := repository.NewHistoryRepository(components.DB)

	// Initialize services (bottom-up: dependencies first)
	allocationService := service.NewAllocationService(&service.AllocationServiceOpts{
		Applicants:  applicantRepo,
		History:     historyRepo,
		Programs:    programs,
		Cache:       components.Cache,
		Metrics:     components.Telemetry,
		Logger:      components.Logger,
		SnapshotTTL: components.Config.Redis.SnapshotTTL,
	})

	scheduler := service.NewScheduler(allocationService.Run, components.Logger)

	importService := service.NewImportService(
		applicantRepo,
		scheduler,
		components.Telemetry,
		components.Logger,
	)

	statisticsService := service.NewStatisticsService(
		applicantRepo,
		programs,
		components.Cache,
		components.Logger,
	)

	applicantService := service.NewApplicantService(applicantRepo, components.Logger)
	historyService := service.NewHistoryService(historyRepo, components.Logger)
	adminService := service.NewAdminService(applicantRepo, components.Cache, components.Logger)

	return &Container{
		Components:        components,
		Programs:          programs,
		ApplicantRepo:     applicantRepo,
		HistoryRepo:       historyRepo,
		AllocationService: allocationService,
		Scheduler:         scheduler,
		ImportService:     importService,
		StatisticsService: statisticsService,
		ApplicantService:  applicantService,
		HistoryService:    historyService,
		AdminService:      adminService,
	}, nil
}
