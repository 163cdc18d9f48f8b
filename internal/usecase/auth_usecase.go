package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Zaebanec/NexusGear/internal/config"
	"github.com/Zaebanec/NexusGear/internal/domain/model"
	repo "github.com/Zaebanec/NexusGear/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// initDataに入っているTelegramのユーザー
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// WebAppのinitDataの署名チェック（validatorパッケージが実装）
type InitDataVerifier interface {
	Verify(raw string) (TelegramUser, error)
}

type AuthUsecase struct {
	cfg      config.Config
	users    repo.UserRepository
	verifier InitDataVerifier
	now      func() time.Time
}

func NewAuthUsecase(cfg config.Config, users repo.UserRepository, verifier InitDataVerifier) *AuthUsecase {
	return &AuthUsecase{cfg: cfg, users: users, verifier: verifier, now: time.Now}
}

type AuthResult struct {
	TelegramID int64  `json:"user_id"`
	Token      string `json:"token"`
	ExpiresIn  int    `json:"expires_in"`
}

// initDataを検証してユーザーを登録（いなければ）し、JWTを返す
func (u *AuthUsecase) ValidateTelegram(ctx context.Context, initData string) (AuthResult, error) {
	if strings.TrimSpace(initData) == "" {
		return AuthResult{}, invalidInput("init_data is required")
	}
	tu, err := u.verifier.Verify(initData)
	if err != nil {
		return AuthResult{}, err
	}

	if _, err := u.RegisterIfAbsent(ctx, tu); err != nil {
		return AuthResult{}, err
	}

	token, err := u.issueAccessToken(tu.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}
	return AuthResult{
		TelegramID: tu.ID,
		Token:      token,
		ExpiresIn:  int(u.cfg.JWTTTL.Seconds()),
	}, nil
}

// 初回は作成、2回目以降は表示名だけ更新
func (u *AuthUsecase) RegisterIfAbsent(ctx context.Context, tu TelegramUser) (model.User, error) {
	if tu.ID <= 0 {
		return model.User{}, invalidInput("telegram id is required")
	}
	fullName := strings.TrimSpace(tu.FirstName + " " + tu.LastName)
	var username *string
	if tu.Username != "" {
		username = &tu.Username
	}

	existing, err := u.users.FindByTelegramID(ctx, tu.ID)
	if err == nil {
		if existing.FullName != fullName || !sameString(existing.Username, username) {
			existing.FullName = fullName
			existing.Username = username
			if err := u.users.UpdateProfile(ctx, existing); err != nil {
				return model.User{}, fmt.Errorf("update user: %w", err)
			}
		}
		return existing, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}

	created, err := u.users.Create(ctx, model.User{TelegramID: tu.ID, FullName: fullName, Username: username})
	if errors.Is(err, repo.ErrConflict) {
		// 同時に登録された
		return u.users.FindByTelegramID(ctx, tu.ID)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// jwt発行。subはtelegram id
func (u *AuthUsecase) issueAccessToken(telegramID int64) (string, error) {
	now := u.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(telegramID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.JWTTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(u.cfg.JWTSecret))
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
