package app

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"pet-adoption-hub/internal/domain/adoptions"
	"pet-adoption-hub/internal/domain/pets"
	"pet-adoption-hub/internal/platform/logger"
)

// RequestAdoption registra una solicitud del usuario actual para petID.
// Todas las validaciones son locales; no hay llamada remota.
func (s *Service) RequestAdoption(ctx context.Context, petID, message string) (adoptions.Request, error) {
	_, span := s.tracer.Start(ctx, "app.request_adoption", trace.WithAttributes(attribute.String("pet.id", petID)))
	defer span.End()

	id, err := s.requireUser()
	if err != nil {
		return adoptions.Request{}, err
	}

	p, ok := s.pets.Get(strings.TrimSpace(petID))
	if !ok {
		return adoptions.Request{}, ErrPetNotFound
	}
	if pets.IsOwner(p, id.Name) {
		return adoptions.Request{}, ErrSelfAdoption
	}
	if p.IsAdopted() {
		return adoptions.Request{}, ErrAlreadyAdopted
	}
	if s.ledger.HasPending(p.ID, id.Name) {
		return adoptions.Request{}, ErrDuplicateRequest
	}

	return s.ledger.SendRequest(adoptions.SendInput{
		PetID:         p.ID,
		RequesterName: id.Name,
		OwnerName:     p.OwnerName(),
		Message:       message,
	})
}

// DecideRequest resuelve la solicitud pending de requester para petID.
//
// Al aprobar: PUT remoto con adoptionStatus=Adopted, después la cache y recién
// después el ledger. Si el PUT falla no se toca nada local.
// Al rechazar: solo el ledger.
func (s *Service) DecideRequest(ctx context.Context, petID, requesterName string, status adoptions.Status) error {
	ctx, span := s.tracer.Start(ctx, "app.decide_request", trace.WithAttributes(
		attribute.String("pet.id", petID),
		attribute.String("request.status", string(status)),
	))
	defer span.End()

	if !status.IsResolved() {
		return ErrInvalidInput
	}

	id, err := s.requireOwner(petID)
	if err != nil {
		return err
	}
	if !s.ledger.HasPending(petID, requesterName) {
		return ErrRequestNotFound
	}

	if status == adoptions.StatusApproved {
		p, _ := s.pets.Get(petID)
		if p.IsAdopted() {
			return ErrAlreadyAdopted
		}

		if _, err := s.catalog.SetAdoptionStatus(ctx, id.Credential, petID, pets.StatusAdopted); err != nil {
			span.RecordError(err)
			s.log.Warn("approve: remote update failed", logger.Fields{"pet_id": petID, "err": err})
			return err
		}
		s.pets.SetAdoptionStatus(petID, pets.StatusAdopted)
	}

	s.ledger.UpdateRequestStatus(petID, requesterName, status)
	return nil
}

// ReceivedRequests: solicitudes sobre mascotas del usuario actual.
func (s *Service) ReceivedRequests() ([]adoptions.Request, error) {
	id, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	return s.ledger.GetRequestsForOwner(id.Name, s.pets.All()), nil
}

// SentRequests: solicitudes hechas por el usuario actual.
func (s *Service) SentRequests() ([]adoptions.Request, error) {
	id, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	return s.ledger.GetRequestsByRequester(id.Name), nil
}

// PetRequests lista las solicitudes de una mascota; solo para su dueño.
func (s *Service) PetRequests(petID string) ([]adoptions.Request, error) {
	if _, err := s.requireOwner(petID); err != nil {
		return nil, err
	}
	return s.ledger.GetRequestsForPet(petID), nil
}

func (s *Service) MarkSeen(role adoptions.Role) (int, error) {
	id, err := s.requireUser()
	if err != nil {
		return 0, err
	}
	if _, ok := adoptions.ParseRole(string(role)); !ok {
		return 0, ErrInvalidInput
	}
	return s.ledger.MarkRequestsAsSeen(role, id.Name), nil
}

func (s *Service) AlertCount() (int, error) {
	id, err := s.requireUser()
	if err != nil {
		return 0, err
	}
	return s.alerts.Count(id.Name), nil
}

// WatchAlerts llama a fn con el conteo del usuario actual cada vez que cambia.
func (s *Service) WatchAlerts(fn func(int)) (stop func(), err error) {
	id, err := s.requireUser()
	if err != nil {
		return func() {}, err
	}
	return s.alerts.Watch(id.Name, fn), nil
}
