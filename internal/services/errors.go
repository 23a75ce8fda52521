package services

import "errors"

// Common service errors
var (
	ErrNotFound           = errors.New("enregistrement introuvable")
	ErrInvalidCredentials = errors.New("identifiants invalides")
	ErrInvalidPassword    = errors.New("mot de passe invalide")
	ErrUnauthorized       = errors.New("non autorisé")
	ErrInvalidState       = errors.New("transition d'état invalide")
	ErrDuplicate          = errors.New("enregistrement dupliqué")
	ErrValidation         = errors.New("données invalides")
)
