package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecare/internal/i18n"
	"github.com/terraincognita07/cyclecare/internal/logger"
	"github.com/terraincognita07/cyclecare/internal/services"
)

const (
	defaultAuthTokenTTL = 30 * 24 * time.Hour
	unlockAttemptLimit  = 5
	unlockAttemptWindow = 15 * time.Minute
	minSecretKeyLength  = 32
)

type Handler struct {
	cycles        *services.CycleService
	advisory      *services.AdvisoryService
	articles      *services.ArticleService
	i18n          *i18n.Manager
	log           *logger.Logger
	location      *time.Location
	now           func() time.Time
	secretKey     []byte
	passcodeHash  string
	cookieSecure  bool
	unlockLimiter *attemptLimiter
}

type HandlerOptions struct {
	Cycles       *services.CycleService
	Advisory     *services.AdvisoryService
	Articles     *services.ArticleService
	I18n         *i18n.Manager
	Logger       *logger.Logger
	Location     *time.Location
	SecretKey    string
	PasscodeHash string
	CookieSecure bool
}

func NewHandler(options HandlerOptions) (*Handler, error) {
	if options.Cycles == nil || options.Advisory == nil {
		return nil, errors.New("cycle and advisory services are required")
	}
	if options.I18n == nil {
		return nil, errors.New("i18n manager is required")
	}
	passcodeHash := strings.TrimSpace(options.PasscodeHash)
	if passcodeHash != "" && len(options.SecretKey) < minSecretKeyLength {
		return nil, errors.New("secret key must be at least 32 characters when the access lock is enabled")
	}

	location := options.Location
	if location == nil {
		location = time.UTC
	}
	log := options.Logger
	if log == nil {
		log = logger.Nop()
	}
	articles := options.Articles
	if articles == nil {
		articles = services.NewArticleService(options.I18n)
	}

	return &Handler{
		cycles:        options.Cycles,
		advisory:      options.Advisory,
		articles:      articles,
		i18n:          options.I18n,
		log:           log,
		location:      location,
		now:           time.Now,
		secretKey:     []byte(options.SecretKey),
		passcodeHash:  passcodeHash,
		cookieSecure:  options.CookieSecure,
		unlockLimiter: newAttemptLimiter(unlockAttemptLimit, unlockAttemptWindow),
	}, nil
}

func (handler *Handler) accessLockEnabled() bool {
	return handler.passcodeHash != ""
}

type unlockInput struct {
	Passcode string `json:"passcode" form:"passcode"`
}

type editCycleInput struct {
	StartDate string   `json:"startDate"`
	EndDate   *string  `json:"endDate"`
	Symptoms  []string `json:"symptoms"`
}
