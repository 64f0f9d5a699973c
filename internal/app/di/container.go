package di

import (
	"fmt"

	"gorm.io/gorm"

	authadapters "user_backend/internal/feature/auth/adapters"
	authhandler "user_backend/internal/feature/auth/transport/handler"
	authusecase "user_backend/internal/feature/auth/usecase"
	usershandler "user_backend/internal/feature/users/transport/handler"
	usersusecase "user_backend/internal/feature/users/usecase"
	platformhandler "user_backend/internal/platform/http/handler"
	jwtmw "user_backend/internal/platform/jwt"
	"user_backend/internal/platform/password"
)

// Container holds the wired HTTP handlers and the token verifier used by the router.
type Container struct {
	Auth     *authhandler.AuthHandler
	Users    *usershandler.UserHandler
	Health   *platformhandler.HealthHandler
	Verifier jwtmw.AccessTokenVerifier
}

// NewContainer wires repositories, usecases and handlers on top of db.
func NewContainer(db *gorm.DB, tokens authusecase.RefreshTokenStore, jwtCfg jwtmw.Config) (*Container, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Repository
	userRepo := authadapters.NewUserRepository(db)

	// Usecase
	issuer := jwtmw.NewIssuerFromConfig(jwtCfg)
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, password.NewHasher(password.DefaultCost), issuer, authusecase.Options{
		IssueRefreshToken: jwtCfg.IssueRefreshToken,
		RefreshTokenTTL:   issuer.RefreshTTL(),
	})
	usersUC := usersusecase.NewUserUsecase(userRepo)

	// Handler
	return &Container{
		Auth:     authhandler.NewAuthHandler(authUC),
		Users:    usershandler.NewUserHandler(usersUC),
		Health:   platformhandler.NewHealthHandler(sqlDB),
		Verifier: issuer,
	}, nil
}
