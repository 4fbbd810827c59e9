package pgsql

import (
	portsrepo "github.com/ecclesiahq/ecclesia-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	churchRepo := newPgxChurchRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	meditationRepo := newPgxMeditationRepository(dbPool)
	presentationRepo := newPgxPresentationRepository(dbPool)
	preferenceRepo := newPgxPreferenceRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		TransactionRepo:  transactionRepo,
		UserRepo:         userRepo,
		ChurchRepo:       churchRepo,
		MeditationRepo:   meditationRepo,
		PresentationRepo: presentationRepo,
		PreferenceRepo:   preferenceRepo,
		ReportingRepo:    reportingRepo,
	}
}
