package repository

import (
	"context"

	"github.com/Zaebanec/NexusGear/internal/domain/model"
)

// ユーザーの保存・取得を約束
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByTelegramID(ctx context.Context, telegramID int64) (model.User, error)
	// IDとcreated_atが埋まったものを返す
	Create(ctx context.Context, user model.User) (model.User, error)
	// 表示用の項目（名前・username）だけ更新
	UpdateProfile(ctx context.Context, user model.User) error
}
