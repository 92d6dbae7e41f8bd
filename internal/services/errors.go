// Package services defines the business rules for groups, memberships, join
// requests and post interactions. This file centralizes the service-level
// error type and its sentinel values so that every service method fails in
// a way callers can classify.
//
// Each predictable failure is a package-level *Error carrying a Kind and a
// user-facing message. Callers compare with errors.Is against the sentinel
// and translate Kind into a transport status with KindOf. Any error that is
// not an *Error (a driver failure, a closed pool) is KindInternal and its
// text must not reach the client.
package services

import "errors"

// Kind classifies a service failure.
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a classified service failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newError(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

// KindOf returns the Kind of err, or KindInternal when err is not (and does
// not wrap) an *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// Caller and input errors.
var (
	ErrUnauthenticated = newError(KindUnauthorized, "Usuário não autenticado")
	ErrInvalidID       = newError(KindBadRequest, "ID inválido")
	ErrForbidden       = newError(KindForbidden, "Sem permissão")
)

// Group errors.
var (
	ErrGroupNotFound    = newError(KindNotFound, "Grupo não encontrado")
	ErrEmptyGroupName   = newError(KindBadRequest, "Nome do grupo é obrigatório")
	ErrGroupNameTooLong = newError(KindBadRequest, "Nome do grupo muito longo")
)

// Membership errors.
var (
	ErrMembershipNotFound = newError(KindNotFound, "Membro não encontrado")
	ErrAlreadyMember      = newError(KindConflict, "Usuário já é membro do grupo")
	ErrInvalidRole        = newError(KindBadRequest, "Papel inválido")

	// ErrCreatorMembership guards the creator's membership against removal
	// and demotion through ordinary membership management.
	ErrCreatorMembership = newError(KindForbidden, "A participação do criador do grupo não pode ser removida ou rebaixada")
)

// Join-request errors.
var (
	ErrJoinRequestNotFound = newError(KindNotFound, "Solicitação não encontrada")
	ErrJoinRequestExists   = newError(KindConflict, "Solicitação já existe")
	ErrJoinRequestResolved = newError(KindConflict, "Solicitação já foi respondida")
	ErrInvalidMadeBy       = newError(KindBadRequest, "Origem da solicitação inválida")
	ErrMissingTargetUser   = newError(KindBadRequest, "Usuário convidado é obrigatório")
)

// Post and interaction errors.
var (
	ErrPostNotFound       = newError(KindNotFound, "Post não encontrado")
	ErrEmptyPostContent   = newError(KindBadRequest, "Conteúdo do post é obrigatório")
	ErrAlreadyLiked       = newError(KindConflict, "Você já curtiu este post")
	ErrLikeNotFound       = newError(KindNotFound, "Curtida não encontrada")
	ErrAlreadyAttending   = newError(KindConflict, "Você já confirmou presença neste post")
	ErrAttendanceNotFound = newError(KindNotFound, "Presença não encontrada")
	ErrEmptyComment       = newError(KindBadRequest, "Conteúdo do comentário é obrigatório")
	ErrCommentTooLong     = newError(KindBadRequest, "Comentário muito longo")
	ErrPostTooLong        = newError(KindBadRequest, "Post muito longo")
)
