package repositories

import (
	"context"
	"github.com/maxaizer/job-saver/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Settings is the credential store: two string keys in a key/value table.
type Settings struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *Settings {
	return &Settings{db: db}
}

func (repo *Settings) Load(ctx context.Context, name string) (string, bool, error) {
	setting := &entities.Setting{}
	err := repo.db.WithContext(ctx).First(setting, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return setting.Value, true, nil
}

// LoadCredentials returns nil when either key is missing.
func (repo *Settings) LoadCredentials(ctx context.Context) (*entities.Credentials, error) {
	token, found, err := repo.Load(ctx, entities.SettingNotionToken)
	if err != nil || !found {
		return nil, err
	}

	databaseID, found, err := repo.Load(ctx, entities.SettingDatabaseID)
	if err != nil || !found {
		return nil, err
	}

	credentials := &entities.Credentials{Token: token, CollectionID: databaseID}
	if !credentials.Complete() {
		return nil, nil
	}
	return credentials, nil
}

// SaveCredentials writes both keys in one transaction.
func (repo *Settings) SaveCredentials(ctx context.Context, credentials entities.Credentials) error {
	if !credentials.Complete() {
		return errors.New("refusing to store incomplete credentials")
	}

	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&entities.Setting{Name: entities.SettingNotionToken, Value: credentials.Token}).Error; err != nil {
			return errors.Wrap(err, "saving token")
		}
		if err := tx.Save(&entities.Setting{Name: entities.SettingDatabaseID, Value: credentials.CollectionID}).Error; err != nil {
			return errors.Wrap(err, "saving database id")
		}
		return nil
	})
}

func (repo *Settings) ClearCredentials(ctx context.Context) error {
	return repo.db.WithContext(ctx).
		Delete(&entities.Setting{}, "name IN ?", []string{entities.SettingNotionToken, entities.SettingDatabaseID}).Error
}
