package server

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gravitas-games/hexmap/internal/config"
	"github.com/gravitas-games/hexmap/internal/gamemap"
	"github.com/gravitas-games/hexmap/internal/network"
	"github.com/gravitas-games/hexmap/pkg/models"
)

// Session is the shared map session all clients join: the map itself plus
// the set of connected editors.
type Session struct {
	ID        string
	CreatedAt time.Time

	// Client management
	editors     map[string]*models.Editor // editorID -> Editor
	connections map[string]*Connection    // editorID -> Connection
	mu          sync.RWMutex

	// The shared map; guarded by mapMu so edits and chunk reads don't race
	gameMap *gamemap.Map
	mapMu   sync.RWMutex

	// Configuration
	config *config.Config
}

// NewSession creates the map session, loading the map from the configured
// save file when one exists and generating a fresh one otherwise.
func NewSession(cfg *config.Config) (*Session, error) {
	id := uuid.NewString()
	log.Printf("Creating session: %s", id)

	gameMap, err := openMap(cfg)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:          id,
		CreatedAt:   time.Now(),
		editors:     make(map[string]*models.Editor),
		connections: make(map[string]*Connection),
		gameMap:     gameMap,
		config:      cfg,
	}

	log.Printf("Session %s created with %d map cells", id, gameMap.CellCount())
	return session, nil
}

func openMap(cfg *config.Config) (*gamemap.Map, error) {
	metrics := cfg.Grid.Metrics()

	if path := cfg.Session.MapPath; path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			gm, err := gamemap.Load(f, metrics)
			if err != nil {
				return nil, fmt.Errorf("loading map %s: %w", path, err)
			}
			log.Printf("Loaded map from %s", path)
			return gm, nil
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("opening map %s: %w", path, err)
		}
		log.Printf("Map file %s not found, generating", path)
	}

	return gamemap.New(cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.ChunkSizeZ, metrics, cfg.Grid.Seed), nil
}

// SaveMap writes the shared map to the configured save file.
func (s *Session) SaveMap() error {
	path := s.config.Session.MapPath
	if path == "" {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating map file %s: %w", path, err)
	}
	defer f.Close()

	s.mapMu.RLock()
	defer s.mapMu.RUnlock()
	if err := s.gameMap.Save(f); err != nil {
		return fmt.Errorf("saving map %s: %w", path, err)
	}

	log.Printf("Saved map to %s", path)
	return nil
}

// Map returns the shared map. Callers must hold the session's map lock
// through WithMap/WithMapRead for anything stateful.
func (s *Session) Map() *gamemap.Map {
	return s.gameMap
}

// WithMapRead runs fn with the map locked for reading.
func (s *Session) WithMapRead(fn func(*gamemap.Map)) {
	s.mapMu.RLock()
	defer s.mapMu.RUnlock()
	fn(s.gameMap)
}

// WithMap runs fn with the map locked for writing.
func (s *Session) WithMap(fn func(*gamemap.Map)) {
	s.mapMu.Lock()
	defer s.mapMu.Unlock()
	fn(s.gameMap)
}

// AddEditor adds a client to the session
func (s *Session) AddEditor(editor *models.Editor, conn *Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.editors) >= s.config.Session.MaxClients {
		return fmt.Errorf("session full (%d clients)", s.config.Session.MaxClients)
	}

	s.editors[editor.ID] = editor
	s.connections[editor.ID] = conn

	log.Printf("Editor %s (%s) joined session %s", editor.Username, editor.ID, s.ID)
	return nil
}

// RemoveEditor removes a client from the session
func (s *Session) RemoveEditor(editorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if editor, exists := s.editors[editorID]; exists {
		log.Printf("Editor %s (%s) left session %s", editor.Username, editorID, s.ID)
		delete(s.editors, editorID)
		delete(s.connections, editorID)
	}
}

// GetEditor retrieves a client by ID
func (s *Session) GetEditor(editorID string) (*models.Editor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	editor, exists := s.editors[editorID]
	return editor, exists
}

// EditorCount returns the number of connected clients
func (s *Session) EditorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.editors)
}

// BroadcastMessage sends a message to all connected clients
func (s *Session) BroadcastMessage(msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		conn.SendMessage(msg)
	}
}

// BroadcastExcept sends a message to all clients except the specified connection
func (s *Session) BroadcastExcept(exclude *Connection, msg *network.ServerMessage) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, conn := range s.connections {
		if conn != exclude {
			conn.SendMessage(msg)
		}
	}
}
