package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/hospitality-ops-api/internal/application/dto"
	"github.com/jhoicas/hospitality-ops-api/internal/domain"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/entity"
	"github.com/jhoicas/hospitality-ops-api/internal/domain/repository"
)

const userInviteTemplate = "user_invite.tmpl"

// Mailer envío de correos transaccionales a partir de plantillas.
type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

// UserUseCase alta de usuarios por un administrador de la empresa.
type UserUseCase struct {
	repo        repository.UserRepository
	companyRepo repository.CompanyRepository
	siteRepo    repository.SiteRepository
	mailer      Mailer // opcional
	log         zerolog.Logger
}

// NewUserUseCase construye el caso de uso. mailer puede ser nil (invitaciones deshabilitadas).
func NewUserUseCase(
	repo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	siteRepo repository.SiteRepository,
	mailer Mailer,
	log zerolog.Logger,
) *UserUseCase {
	return &UserUseCase{repo: repo, companyRepo: companyRepo, siteRepo: siteRepo, mailer: mailer, log: log}
}

// Create crea un usuario en la empresa del administrador y le envía la invitación.
// Sin password se genera una contraseña temporal y el usuario queda invitado.
// El fallo del correo se registra y se informa con InviteSent=false; nunca falla la petición.
func (uc *UserUseCase) Create(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	if in.SiteID != nil && *in.SiteID != "" {
		site, err := uc.siteRepo.GetByID(ctx, *in.SiteID)
		if err != nil {
			return nil, err
		}
		if site == nil || site.CompanyID != companyID {
			return nil, fmt.Errorf("%w: local no encontrado", domain.ErrInvalidInput)
		}
	}

	password := in.Password
	status := entity.UserStatusActive
	temporary := ""
	if password == "" {
		temporary = strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
		password = temporary
		status = entity.UserStatusInvited
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SiteID:       in.SiteID,
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Role:         in.Role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &dto.CreateUserResponse{
		User:       *toUserResponse(user),
		InviteSent: uc.sendInvite(user, company, temporary),
	}, nil
}

// List lista los usuarios de la empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func (uc *UserUseCase) sendInvite(user *entity.User, company *entity.Company, temporaryPassword string) bool {
	if uc.mailer == nil {
		return false
	}
	data := map[string]any{
		"name":              user.Name,
		"email":             user.Email,
		"role":              user.Role,
		"companyName":       company.Name,
		"temporaryPassword": temporaryPassword,
	}
	if err := uc.mailer.Send(user.Email, userInviteTemplate, data); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("usuarios: fallo enviando la invitación")
		return false
	}
	return true
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		SiteID:    u.SiteID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
