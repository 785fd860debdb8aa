package api

import (
	"log/slog"

	"github.com/International-Combat-Archery-Alliance/auth"
	"github.com/International-Combat-Archery-Alliance/captcha"
	"github.com/International-Combat-Archery-Alliance/email"
	"github.com/shopglass/wholesale-gate/access"
	"github.com/shopglass/wholesale-gate/customer"
	"github.com/shopglass/wholesale-gate/wholesale"
)

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

type DB interface {
	wholesale.RecordStore
}

// RegistrationBackend is the commerce backend wholesale applications are
// submitted to and approval status is read from.
type RegistrationBackend interface {
	wholesale.Submitter
	wholesale.ApprovalChecker
}

// Settings is the per-store configuration the API serves decisions for.
type Settings struct {
	StoreID           string
	TargetGroup       string
	RegistrationRoute string
	FromAddress       string
	AllowedOrigins    []string
}

type API struct {
	db               DB
	backend          RegistrationBackend
	customers        customer.Source
	logger           *slog.Logger
	env              Environment
	authValidator    auth.Validator
	captchaValidator captcha.Validator
	emailSender      email.Sender
	settings         Settings

	evaluator *access.Evaluator
	fields    wholesale.FieldSet
	guards    *wholesale.GuardSet
}

func NewAPI(
	db DB,
	backend RegistrationBackend,
	customers customer.Source,
	logger *slog.Logger,
	env Environment,
	authValidator auth.Validator,
	captchaValidator captcha.Validator,
	emailSender email.Sender,
	settings Settings,
) *API {
	return &API{
		db:               db,
		backend:          backend,
		customers:        customers,
		logger:           logger,
		env:              env,
		authValidator:    authValidator,
		captchaValidator: captchaValidator,
		emailSender:      emailSender,
		settings:         settings,
		evaluator:        access.NewEvaluator(settings.TargetGroup, settings.RegistrationRoute),
		fields:           wholesale.DefaultFieldSet(),
		guards:           wholesale.NewGuardSet(),
	}
}
