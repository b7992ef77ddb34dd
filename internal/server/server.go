// Package server exposes a hashmap.Table over TCP using the inline command
// protocol from internal/proto. The table itself is unsynchronized, so the
// server guards it with a single RWMutex: read commands (GET, EXISTS, LEN,
// SIZE, KEYS) share the read lock, mutating commands (PUT, DEL, CLEAR,
// RESIZE) take the write lock.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/panjf2000/gnet/v2"
	"github.com/valyala/bytebufferpool"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ilaym3/hashmap"
	"github.com/ilaym3/hashmap/internal/proto"
)

const (
	DefaultAddr      = ":6380"
	DefaultTableSize = 16
)

type Config struct {
	Addr      string
	TableSize int
	Multicore bool
}

func (cfg Config) validate() error {
	var err error
	if cfg.Addr == "" {
		err = multierr.Append(err, errors.New("addr must not be empty"))
	}
	if cfg.TableSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("table size must be positive, got %d", cfg.TableSize))
	}
	return err
}

type Server struct {
	gnet.BuiltinEventEngine

	cfg Config
	log *zap.Logger
	eng gnet.Engine

	mu    sync.RWMutex
	table *hashmap.Table

	booted   atomic.Bool
	commands atomic.Uint64
}

func New(cfg Config, log *zap.Logger) (*Server, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	table, err := hashmap.New(cfg.TableSize)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:   cfg,
		log:   log,
		table: table,
	}, nil
}

// Run starts the event loop and blocks until the engine stops.
func (s *Server) Run() error {
	return gnet.Run(s, "tcp://"+s.cfg.Addr,
		gnet.WithMulticore(s.cfg.Multicore),
		gnet.WithTCPNoDelay(gnet.TCPNoDelay),
	)
}

// Stop shuts the engine down. It is a no-op if the engine never booted.
func (s *Server) Stop(ctx context.Context) error {
	if !s.booted.Load() {
		return nil
	}
	return s.eng.Stop(ctx)
}

// Commands returns the number of commands dispatched since boot.
func (s *Server) Commands() uint64 {
	return s.commands.Load()
}

func (s *Server) OnBoot(eng gnet.Engine) gnet.Action {
	s.eng = eng
	s.booted.Store(true)
	s.log.Info("server listening",
		zap.String("addr", s.cfg.Addr),
		zap.Int("table_size", s.cfg.TableSize),
		zap.Bool("multicore", s.cfg.Multicore))
	return gnet.None
}

func (s *Server) OnShutdown(gnet.Engine) {
	s.log.Info("server stopped", zap.Uint64("commands", s.commands.Load()))
}

func (s *Server) OnOpen(c gnet.Conn) ([]byte, gnet.Action) {
	c.SetContext(new(bytes.Buffer))
	return nil, gnet.None
}

func (s *Server) OnClose(c gnet.Conn, err error) gnet.Action {
	if err != nil {
		s.log.Debug("connection closed", zap.Error(err))
	}
	return gnet.None
}

func (s *Server) OnTraffic(c gnet.Conn) gnet.Action {
	data, err := c.Next(-1)
	if err != nil {
		return gnet.Close
	}

	buf, ok := c.Context().(*bytes.Buffer)
	if !ok {
		buf = new(bytes.Buffer)
		c.SetContext(buf)
	}
	buf.Write(data)

	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Partial line: push it back and wait for more traffic, unless
			// the client never sends a terminator at all.
			if len(line) > proto.MaxInlineLength {
				proto.AppendError(out, "ERR command line too long")
				c.Write(out.Bytes())
				return gnet.Close
			}
			buf.Write(line)
			break
		}
		s.dispatch(line, out)
	}

	if out.Len() > 0 {
		if _, err := c.Write(out.Bytes()); err != nil {
			s.log.Warn("reply write failed", zap.Error(err))
			return gnet.Close
		}
	}
	return gnet.None
}

func (s *Server) dispatch(line []byte, out *bytebufferpool.ByteBuffer) {
	cmd, err := proto.Parse(line)
	if err != nil {
		if errors.Is(err, proto.ErrEmptyCommand) {
			return
		}
		proto.AppendError(out, "ERR "+err.Error())
		return
	}
	s.commands.Inc()

	switch cmd.Name {
	case "PING":
		proto.AppendPong(out)

	case "PUT":
		if len(cmd.Args) != 2 {
			appendArityError(out, cmd.Name)
			return
		}
		value, err := strconv.Atoi(cmd.Args[1])
		if err != nil {
			proto.AppendError(out, "ERR value is not an integer")
			return
		}
		s.mu.Lock()
		err = s.table.Put(cmd.Args[0], value)
		s.mu.Unlock()
		if err != nil {
			proto.AppendError(out, "ERR "+err.Error())
			return
		}
		proto.AppendOK(out)

	case "GET":
		if len(cmd.Args) != 1 {
			appendArityError(out, cmd.Name)
			return
		}
		s.mu.RLock()
		value, err := s.table.Get(cmd.Args[0])
		s.mu.RUnlock()
		if errors.Is(err, hashmap.ErrKeyNotFound) {
			proto.AppendError(out, "ERR key not found")
			return
		}
		if err != nil {
			proto.AppendError(out, "ERR "+err.Error())
			return
		}
		proto.AppendInt(out, value)

	case "DEL":
		if len(cmd.Args) != 1 {
			appendArityError(out, cmd.Name)
			return
		}
		s.mu.Lock()
		err := s.table.Delete(cmd.Args[0])
		s.mu.Unlock()
		if errors.Is(err, hashmap.ErrKeyNotFound) {
			proto.AppendError(out, "ERR key not found")
			return
		}
		if err != nil {
			proto.AppendError(out, "ERR "+err.Error())
			return
		}
		proto.AppendOK(out)

	case "EXISTS":
		if len(cmd.Args) != 1 {
			appendArityError(out, cmd.Name)
			return
		}
		s.mu.RLock()
		exists := s.table.ContainsKey(cmd.Args[0])
		s.mu.RUnlock()
		if exists {
			proto.AppendInt(out, 1)
		} else {
			proto.AppendInt(out, 0)
		}

	case "LEN":
		s.mu.RLock()
		n := s.table.Len()
		s.mu.RUnlock()
		proto.AppendInt(out, n)

	case "SIZE":
		s.mu.RLock()
		n := s.table.Size()
		s.mu.RUnlock()
		proto.AppendInt(out, n)

	case "KEYS":
		s.mu.RLock()
		keys := s.table.Keys()
		s.mu.RUnlock()
		proto.AppendArray(out, keys)

	case "CLEAR":
		s.mu.Lock()
		err := s.table.Clear()
		s.mu.Unlock()
		if err != nil {
			proto.AppendError(out, "ERR "+err.Error())
			return
		}
		proto.AppendOK(out)

	case "RESIZE":
		s.mu.Lock()
		err := s.table.Resize()
		s.mu.Unlock()
		if err != nil {
			proto.AppendError(out, "ERR "+err.Error())
			return
		}
		proto.AppendOK(out)

	default:
		proto.AppendError(out, "ERR unknown command '"+cmd.Name+"'")
	}
}

func appendArityError(out *bytebufferpool.ByteBuffer, name string) {
	proto.AppendError(out, "ERR wrong number of arguments for '"+name+"'")
}
