package domain

import "errors"

var (
	ErrNoticiaNotFound = errors.New("noticia no encontrada")
	ErrForbidden       = errors.New("acceso no autorizado")

	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailRegistered    = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUserInactive       = errors.New("usuario inactivo")

	ErrTokenMalformed = errors.New("token malformado")
	ErrTokenInvalid   = errors.New("token inválido")
	ErrTokenExpired   = errors.New("token expirado")
)
