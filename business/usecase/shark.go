// Package usecase provides business logic.
package usecase

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/logger"
	"github.com/forest33/shark/pkg/structs"
)

// SharkUseCase recursive packet dissection engine
type SharkUseCase struct {
	log      *logger.Logger
	cfg      *entity.DissectionConfig
	registry dissectorRegistry
	mux      sync.RWMutex
}

// session state of one top-level dissection
type session struct {
	uc       *SharkUseCase
	id       uuid.UUID
	tolerant bool
	maxDepth int
}

// NewSharkUseCase creates a new SharkUseCase
func NewSharkUseCase(log *logger.Logger, cfg *entity.DissectionConfig, registry dissectorRegistry) (*SharkUseCase, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(entity.ErrValidation, err.Error())
	}
	if _, err := registry.Resolve(cfg.RootProtocol); err != nil {
		return nil, err
	}

	return &SharkUseCase{
		log:      log.Layer("ucshark"),
		cfg:      cfg.Clone(),
		registry: registry,
	}, nil
}

// SetConfig replaces dissection settings, used on config reload
func (uc *SharkUseCase) SetConfig(cfg *entity.DissectionConfig) error {
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(entity.ErrValidation, err.Error())
	}
	if _, err := uc.registry.Resolve(cfg.RootProtocol); err != nil {
		return err
	}

	uc.mux.Lock()
	uc.cfg = cfg.Clone()
	uc.mux.Unlock()

	uc.log.Info().
		Str("root", cfg.RootProtocol).
		Bool("tolerant", structs.Deref(cfg.Tolerant, false)).
		Int("maxDepth", cfg.MaxDepth).
		Msg("dissection settings updated")

	return nil
}

// Protocols returns registered dissectors
func (uc *SharkUseCase) Protocols() []*entity.ProtocolInfo {
	ids := uc.registry.IDs()
	info := make([]*entity.ProtocolInfo, 0, len(ids))
	for _, id := range ids {
		d, err := uc.registry.Resolve(id)
		if err != nil {
			continue
		}
		info = append(info, &entity.ProtocolInfo{
			ID:    d.ID,
			Name:  d.Name,
			Nexts: structs.Map(d.Nexts, func(n entity.NextCandidate) string { return n.ID }),
		})
	}
	return info
}

// Dissect decodes data starting from the protocol dissector and follows next
// layers until no candidate matches. An empty protocol selects the configured root.
func (uc *SharkUseCase) Dissect(protocol string, data []byte) (*entity.Dissection, error) {
	uc.mux.RLock()
	cfg := uc.cfg
	uc.mux.RUnlock()

	if protocol == "" {
		protocol = cfg.RootProtocol
	}
	d, err := uc.registry.Resolve(protocol)
	if err != nil {
		return nil, err
	}

	s := &session{
		uc:       uc,
		id:       uuid.New(),
		tolerant: structs.Deref(cfg.Tolerant, false),
		maxDepth: cfg.MaxDepth,
	}

	ds := &entity.Dissection{
		ID:       s.id,
		Protocol: protocol,
		Root:     entity.NewRecord().Set("length", len(data)),
	}

	ds.Layer, err = s.dissect(d, data, ds.Root, 0, nil)
	if err != nil {
		uc.log.Debug().
			Str("id", s.id.String()).
			Str("protocol", protocol).
			Err(err).
			Msg("dissection failed")
		return nil, err
	}

	ds.Warnings = ds.Layer.CollectWarnings()
	for _, w := range ds.Warnings {
		uc.log.Warn().
			Str("id", s.id.String()).
			Str("dissector", w.Dissector).
			Str("kind", string(w.Kind)).
			Msg(w.Message)
	}

	return ds, nil
}

func (s *session) dissect(d *entity.Dissector, data []byte, parent *entity.Record, depth int, path []string) (*entity.Layer, error) {
	path = append(path[:len(path):len(path)], d.ID)

	if depth >= s.maxDepth {
		return nil, &entity.DecodeError{Dissector: d.ID, Path: path, Err: entity.ErrMaxDepth}
	}

	layer, err := d.Decode(data, parent)
	if err != nil {
		de, ok := entity.AsDecodeError(err)
		if !ok {
			de = entity.NewDecodeError(d.ID, 0, err)
		}
		if de.Path == nil {
			de.Path = path
		}
		return nil, de
	}

	for _, r := range layer.Records {
		r.Parent = parent
		r.Dissector = d
		for i := range r.Warnings {
			if r.Warnings[i].Dissector == "" {
				r.Warnings[i].Dissector = d.ID
			}
		}
	}

	s.uc.log.Debug().
		Str("id", s.id.String()).
		Str("dissector", d.ID).
		Int("depth", depth).
		Str("kind", layer.Kind.String()).
		Int("records", layer.Len()).
		Msg("layer decoded")

	if d.IsLeaf() {
		return layer, nil
	}

	for _, r := range layer.Records {
		id, ok := d.NextFor(r)
		if !ok {
			continue
		}
		payload, ok := d.PayloadOf(r)
		if !ok || payload == nil {
			continue
		}

		next, err := s.uc.registry.Resolve(id)
		if err != nil {
			return nil, errors.Wrapf(entity.ErrUnresolvedDissector, "%s -> %s", d.ID, id)
		}

		child, err := s.dissect(next, payload, r, depth+1, path)
		if err != nil {
			de, ok := entity.AsDecodeError(err)
			if !s.tolerant || !ok {
				return nil, err
			}
			r.Warnings = append(r.Warnings, entity.Warning{
				Kind:      entity.WarningDecode,
				Dissector: de.Dissector,
				Message:   de.Error(),
			})
			continue
		}
		r.Child = child
	}

	return layer, nil
}

// Watch applies dissection settings from the config file whenever it changes
func (uc *SharkUseCase) Watch(cfgHandler configHandler) error {
	if err := cfgHandler.AddObserver(uc.onConfigChanged); err != nil {
		uc.log.Error().Err(err).Str("path", cfgHandler.GetPath()).Msg("failed to create config file observer")
		return err
	}
	return nil
}

func (uc *SharkUseCase) onConfigChanged(cfg interface{}) {
	c, ok := cfg.(*entity.SharkConfig)
	if !ok || c.Dissection == nil {
		return
	}
	if err := uc.SetConfig(c.Dissection); err != nil {
		uc.log.Error().Err(err).Msg("invalid dissection settings")
	}
}
