package repository

import (
	"context"
	"errors"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
	repo "github.com/Zaebanec/NexusGear/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// IDでユーザーを1件取得
func (r *UserGormRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	return r.first(ctx, "id = ?", id)
}

// telegram_idでユーザーを1件取得
func (r *UserGormRepository) FindByTelegramID(ctx context.Context, telegramID int64) (model.User, error) {
	return r.first(ctx, "telegram_id = ?", telegramID)
}

func (r *UserGormRepository) first(ctx context.Context, cond string, arg any) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where(cond, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.User{}, repo.ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Create はユーザーを新規作成。IDとcreated_atはここで埋まる
func (r *UserGormRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	user.ID = 0
	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return model.User{}, repo.ErrConflict
		}
		return model.User{}, err
	}
	return user, nil
}

// 名前とusernameだけ更新。telegram_idは変えない
func (r *UserGormRepository) UpdateProfile(ctx context.Context, user model.User) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"full_name": user.FullName,
			"username":  user.Username,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
