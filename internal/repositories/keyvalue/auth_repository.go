package keyvalue

import (
	"context"

	"github.com/SscSPs/expense_tracker_app/internal/apperrors"
	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_tracker_app/internal/core/ports/repositories"
)

type kvVerificationRepository struct {
	BaseRepository
}

func newKVVerificationRepository(store portsrepo.KeyValueStore) portsrepo.VerificationRepository {
	return &kvVerificationRepository{BaseRepository{Store: store}}
}

func (r *kvVerificationRepository) SaveVerification(ctx context.Context, record portsrepo.VerificationRecord) error {
	return r.setJSON(ctx, verificationKey(record.VerificationID), record)
}

func (r *kvVerificationRepository) FindVerification(ctx context.Context, verificationID string) (*portsrepo.VerificationRecord, error) {
	var record portsrepo.VerificationRecord
	found, err := r.getJSON(ctx, verificationKey(verificationID), &record)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	return &record, nil
}

func (r *kvVerificationRepository) DeleteVerification(ctx context.Context, verificationID string) error {
	return r.remove(ctx, verificationKey(verificationID))
}

type kvSessionRepository struct {
	BaseRepository
}

func newKVSessionRepository(store portsrepo.KeyValueStore) portsrepo.SessionRepository {
	return &kvSessionRepository{BaseRepository{Store: store}}
}

func (r *kvSessionRepository) SaveSession(ctx context.Context, identity domain.Identity) error {
	return r.setJSON(ctx, sessionKey(identity.SessionID), identity)
}

func (r *kvSessionRepository) FindSession(ctx context.Context, sessionID string) (*domain.Identity, error) {
	var identity domain.Identity
	found, err := r.getJSON(ctx, sessionKey(sessionID), &identity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	return &identity, nil
}

func (r *kvSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	return r.remove(ctx, sessionKey(sessionID))
}
