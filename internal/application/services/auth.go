package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"pdf-collab-api/internal/application/ports"
	domain "pdf-collab-api/internal/domain/user"
	"pdf-collab-api/internal/infrastructure/jwt"
	"pdf-collab-api/internal/infrastructure/mq"
)

var (
	// One error for both unknown email and wrong password, so the
	// response never reveals which one it was.
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

const tokenTTL = time.Hour

type AuthService struct {
	userRepository domain.Repository
	jwtService     *jwt.Service
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	userRepository domain.Repository,
	jwtService *jwt.Service,
	mqPort ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.AuthService {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mq:             mqPort,
		mCounter:       mCounter,
	}
}

func (as *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	passwordHash := string(hash)
	u, err := as.userRepository.CreateUser(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: &passwordHash,
	})
	if err != nil {
		return nil, err
	}

	if u != nil {
		as.mq.GetInputChan() <- mq.Event{
			Id:     uuid.New(),
			TS:     time.Now(),
			Action: mq.ActionUserSignup,
			UserID: u.UUID.String(),
			Payload: map[string]string{
				"name":  u.Name,
				"email": u.Email,
			},
		}
	}

	as.mCounter.WithLabelValues("user_signed_up_total").Inc()

	return u, nil
}

func (as *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := as.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || u.PasswordHash == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := as.jwtService.GenerateJWT(u.UUID.String(), tokenTTL)
	if err != nil {
		return "", nil, ErrFailedToGenerateToken
	}

	as.mCounter.WithLabelValues("user_logged_in_total").Inc()

	return token, u, nil
}
