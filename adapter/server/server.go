// Package server UDP ingest, every received datagram is dissected and rendered to the sink
package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/gnet/v2"
	"github.com/pkg/errors"

	"github.com/forest33/shark/business/entity"
	"github.com/forest33/shark/pkg/codec"
	"github.com/forest33/shark/pkg/format"
	"github.com/forest33/shark/pkg/logger"
	"github.com/forest33/shark/pkg/structs"
)

type Config struct {
	Host      string
	Port      int
	Multicore bool
	// Protocol dissector applied to datagrams, empty selects the configured root
	Protocol string
}

// Stat ingest counters
type Stat struct {
	Received uint64
	Bytes    uint64
	Failed   uint64
}

type Server struct {
	cfg       *Config
	log       *logger.Logger
	dissector entity.PacketDissector
	formatter format.Formatter
	sink      io.Writer
	sinkMux   sync.Mutex
	eng       gnet.Engine
	received  atomic.Uint64
	bytes     atomic.Uint64
	failed    atomic.Uint64
}

func New(cfg *Config, log *logger.Logger, dissector entity.PacketDissector, formatter format.Formatter, sink io.Writer) *Server {
	return &Server{
		cfg:       cfg,
		log:       log.Layer("ingest"),
		dissector: dissector,
		formatter: formatter,
		sink:      sink,
	}
}

// Run starts the event loop in background
func (s *Server) Run() {
	host := structs.If(s.cfg.Host != "", s.cfg.Host, "0.0.0.0")

	go func() {
		s.log.Info().
			Str("host", host).
			Int("port", s.cfg.Port).
			Bool("multicore", s.cfg.Multicore).
			Msg("starting UDP ingest")

		err := gnet.Run(s, fmt.Sprintf("udp://%s:%d", host, s.cfg.Port),
			gnet.WithMulticore(s.cfg.Multicore),
			gnet.WithReuseAddr(true),
			gnet.WithReusePort(true))
		if err != nil {
			s.log.Fatalf("failed to start UDP ingest: %v", err)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.eng.Stop(ctx)
}

// Stat returns a snapshot of the counters
func (s *Server) Stat() Stat {
	return Stat{
		Received: s.received.Load(),
		Bytes:    s.bytes.Load(),
		Failed:   s.failed.Load(),
	}
}

func (s *Server) OnTraffic(conn gnet.Conn) (action gnet.Action) {
	data, err := conn.Next(-1)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read datagram")
		return gnet.None
	}

	if err := s.handle(data); err != nil {
		s.failed.Add(1)
		s.log.Error().Err(err).
			Str("remote", conn.RemoteAddr().String()).
			Int("size", len(data)).
			Msg("failed to dissect datagram")
	}

	return gnet.None
}

// handle dissects a single datagram, text datagrams are treated as hex dumps
func (s *Server) handle(data []byte) error {
	s.received.Add(1)
	s.bytes.Add(uint64(len(data)))

	if codec.IsText(data) {
		frame, err := codec.ParseHex(string(data))
		if err != nil {
			return err
		}
		data = frame
	}
	if len(data) == 0 {
		return nil
	}

	ds, err := s.dissector.Dissect(s.cfg.Protocol, data)
	if err != nil {
		return err
	}

	buf := &bytes.Buffer{}
	if err := s.formatter.Format(buf, ds); err != nil {
		return errors.Wrap(err, "failed to format dissection")
	}

	s.sinkMux.Lock()
	defer s.sinkMux.Unlock()
	_, err = s.sink.Write(buf.Bytes())

	return err
}

func (s *Server) OnBoot(eng gnet.Engine) (action gnet.Action) {
	s.eng = eng
	return gnet.None
}

func (s *Server) OnShutdown(_ gnet.Engine) {
	st := s.Stat()
	s.log.Info().
		Uint64("received", st.Received).
		Uint64("bytes", st.Bytes).
		Uint64("failed", st.Failed).
		Msg("UDP ingest stopped")
}

func (s *Server) OnOpen(_ gnet.Conn) (out []byte, action gnet.Action) {
	return nil, gnet.None
}

func (s *Server) OnClose(_ gnet.Conn, _ error) (action gnet.Action) {
	return gnet.None
}

func (s *Server) OnTick() (delay time.Duration, action gnet.Action) {
	return time.Minute, gnet.None
}
