package db

import (
	"context"
	"time"

	"github.com/terraincognita07/kroha/internal/models"
	"gorm.io/gorm"
)

// Store is the read surface the scheduler evaluates against. It scopes every
// call to the caller's context so a slow database cannot stall a tick past
// its deadline.
type Store struct {
	database *gorm.DB
}

func NewStore(database *gorm.DB) *Store {
	return &Store{database: database}
}

func (store *Store) scoped(ctx context.Context) *Repositories {
	return NewRepositories(store.database.WithContext(ctx))
}

func (store *Store) LatestEvent(ctx context.Context, familyID uint, kind string) (models.Event, bool, error) {
	return store.scoped(ctx).Events.LatestByFamilyAndKind(familyID, kind)
}

func (store *Store) ActiveSleepSession(ctx context.Context, familyID uint) (models.SleepSession, bool, error) {
	return store.scoped(ctx).SleepSessions.ActiveByFamily(familyID)
}

func (store *Store) Settings(ctx context.Context, familyID uint) (models.Settings, error) {
	return store.scoped(ctx).Settings.GetOrDefault(familyID)
}

func (store *Store) Members(ctx context.Context, familyID uint) ([]models.Caregiver, error) {
	return store.scoped(ctx).Families.MembersByFamily(familyID)
}

func (store *Store) FamilyIDsWithTipsEnabled(ctx context.Context) ([]uint, error) {
	return store.scoped(ctx).Settings.FamilyIDsWithTipsEnabled()
}

func (store *Store) FamilyIDsWithBathReminders(ctx context.Context) ([]uint, error) {
	return store.scoped(ctx).Settings.FamilyIDsWithBathReminders()
}

func (store *Store) FamilyIDsWithActivityReminders(ctx context.Context) ([]uint, error) {
	return store.scoped(ctx).Settings.FamilyIDsWithActivityReminders()
}

func (store *Store) FamilyIDsWithSleepMonitoring(ctx context.Context) ([]uint, error) {
	return store.scoped(ctx).Settings.FamilyIDsWithSleepMonitoring()
}

// Ping reports whether the underlying database answers, for the health endpoint.
func (store *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return store.database.WithContext(ctx).Exec("SELECT 1").Error
}
