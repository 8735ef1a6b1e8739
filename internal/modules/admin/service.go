package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"guidemarket/internal/domain"
	"guidemarket/internal/localstore"
	"guidemarket/internal/seed"
)

// ErrBackupUnsupported is returned by export/import on a store without a
// document form.
var ErrBackupUnsupported = errors.New("export and import are only available for the local store")

type Service struct {
	store Store
	log   zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) backup() (Backup, error) {
	b, ok := s.store.(Backup)
	if !ok {
		return nil, fmt.Errorf("%s store: %w", s.store.Source(), ErrBackupUnsupported)
	}
	return b, nil
}

// Clear removes every guide (and with them every review) from the active store.
func (s *Service) Clear(ctx context.Context) domain.Result[int] {
	res := s.store.Clear(ctx)
	if res.Success {
		s.log.Warn().Str("source", s.store.Source()).Int("guides", res.Data).Msg("store cleared")
	}
	return res
}

func (s *Service) Export(ctx context.Context) (domain.Result[localstore.Document], error) {
	b, err := s.backup()
	if err != nil {
		return domain.Result[localstore.Document]{}, err
	}
	return b.Export(ctx), nil
}

func (s *Service) Import(ctx context.Context, doc localstore.Document) (domain.Result[int], error) {
	b, err := s.backup()
	if err != nil {
		return domain.Result[int]{}, err
	}
	res := b.Import(ctx, doc)
	if res.Success {
		s.log.Info().Int("guides", res.Data).Msg("document imported")
	}
	return res, nil
}

func (s *Service) Seed(ctx context.Context) domain.Result[seed.Report] {
	rep, err := seed.Run(ctx, s.store, s.log)
	if err != nil {
		return domain.Fail[seed.Report](err)
	}
	return domain.OKWithMessage(rep, rep.Message)
}
