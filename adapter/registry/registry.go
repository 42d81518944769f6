// Package registry static table of builtin dissectors
package registry

import (
	"sort"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/forest33/shark/adapter/coap"
	"github.com/forest33/shark/adapter/hdlc"
	"github.com/forest33/shark/adapter/mle"
	"github.com/forest33/shark/adapter/netdata"
	"github.com/forest33/shark/adapter/packet"
	"github.com/forest33/shark/adapter/spinel"
	"github.com/forest33/shark/adapter/tlv"
	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/logger"
)

// Registry maps dissector identifiers to dissectors. Read-only after New.
type Registry struct {
	log        *logger.Logger
	dissectors map[string]*entity.Dissector
	mux        sync.RWMutex
}

// New creates registry holding every builtin dissector. options maps a dissector
// identifier to its settings.
func New(log *logger.Logger, options map[string]map[string]interface{}) (*Registry, error) {
	r := &Registry{
		log:        log.Layer("registry"),
		dissectors: make(map[string]*entity.Dissector, 20),
	}

	hdlcCfg := &hdlc.Config{}
	if err := decodeOptions(options[entity.ProtoHDLC], hdlcCfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s options", entity.ProtoHDLC)
	}
	spinelCfg := &spinel.Config{}
	if err := decodeOptions(options[entity.ProtoSpinel], spinelCfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s options", entity.ProtoSpinel)
	}

	builtins := []*entity.Dissector{
		hdlc.New(hdlcCfg),
		spinel.New(spinelCfg),
		tlv.NewThread(),
		tlv.NewNetworkData(),
		netdata.NewHasRoute(),
		netdata.NewPrefix(),
		netdata.NewBorderRouter(),
		netdata.NewLowpanContext(),
		netdata.NewService(),
		netdata.NewServer(),
		packet.NewIPv6(),
		packet.NewUDP(),
		packet.NewICMPv6(),
		coap.New(),
		mle.New(),
	}
	for _, d := range builtins {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}

	for id := range options {
		if _, ok := r.dissectors[id]; !ok {
			r.log.Warn().Str("dissector", id).Msg("options for unknown dissector ignored")
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	r.log.Debug().Int("count", len(r.dissectors)).Msg("dissectors registered")

	return r, nil
}

// Register adds a dissector
func (r *Registry) Register(d *entity.Dissector) error {
	r.mux.Lock()
	defer r.mux.Unlock()

	if _, ok := r.dissectors[d.ID]; ok {
		return errors.Wrap(entity.ErrDuplicateDissector, d.ID)
	}
	r.dissectors[d.ID] = d

	return nil
}

// Resolve returns dissector by identifier
func (r *Registry) Resolve(id string) (*entity.Dissector, error) {
	r.mux.RLock()
	defer r.mux.RUnlock()

	d, ok := r.dissectors[id]
	if !ok {
		return nil, errors.Wrap(entity.ErrUnknownProtocol, id)
	}
	return d, nil
}

// IDs returns sorted identifiers of registered dissectors
func (r *Registry) IDs() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()

	ids := make([]string, 0, len(r.dissectors))
	for id := range r.dissectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Validate checks that every next candidate resolves
func (r *Registry) Validate() error {
	r.mux.RLock()
	defer r.mux.RUnlock()

	for _, d := range r.dissectors {
		for _, n := range d.Nexts {
			if _, ok := r.dissectors[n.ID]; !ok {
				return errors.Wrapf(entity.ErrUnresolvedDissector, "%s -> %s", d.ID, n.ID)
			}
		}
	}

	return nil
}

func decodeOptions(in map[string]interface{}, out interface{}) error {
	if len(in) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}
