package server

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/gravitas-games/hexmap/internal/gamemap"
	"github.com/gravitas-games/hexmap/internal/hexgrid"
	"github.com/gravitas-games/hexmap/internal/network"
	"github.com/gravitas-games/hexmap/pkg/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	// WebSocket connection
	ws *websocket.Conn

	// Server reference
	server *Server

	// Editor identity (set after authentication)
	editor *models.Editor

	// Buffered channel for outbound messages
	send chan []byte

	// Is connection authenticated
	authenticated bool

	// Has the client joined the session
	joined bool

	// Close is reachable from both the read pump and server shutdown;
	// closeOnce keeps the second caller from re-closing the send channel.
	closeOnce sync.Once
}

// NewConnection creates a new connection
func NewConnection(ws *websocket.Conn, server *Server) *Connection {
	return &Connection{
		ws:            ws,
		server:        server,
		send:          make(chan []byte, 256),
		authenticated: false,
	}
}

// Handle manages the connection lifecycle
func (c *Connection) Handle() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Start read and write pumps
	go c.writePump()
	c.readPump() // Blocking
}

// readPump pumps messages from the WebSocket connection to the server
func (c *Connection) readPump() {
	defer func() {
		c.Close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var clientMsg network.ClientMessage
		if err := json.Unmarshal(message, &clientMsg); err != nil {
			log.Printf("Failed to parse client message: %v", err)
			c.SendError("invalid_message", "Failed to parse message")
			continue
		}

		c.handleMessage(&clientMsg)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.server.ctx.Done():
			// Server shutting down
			return
		}
	}
}

// handleMessage routes messages to appropriate handlers
func (c *Connection) handleMessage(msg *network.ClientMessage) {
	switch msg.Type {
	case network.MsgTypeJoin:
		c.handleJoin()

	case network.MsgTypeLeave:
		c.handleLeave()

	case network.MsgTypeGetCell:
		c.handleGetCell(msg.Payload)

	case network.MsgTypeGetChunk:
		c.handleGetChunk(msg.Payload)

	case network.MsgTypeSetTerrain:
		c.handleSetTerrain(msg.Payload)

	case network.MsgTypeDistance:
		c.handleDistance(msg.Payload)

	case network.MsgTypePing:
		c.handlePing()

	default:
		log.Printf("Unknown message type: %s", msg.Type)
		c.SendError("unknown_message_type", "Unknown message type")
	}
}

// handleJoin adds the client to the shared map session
func (c *Connection) handleJoin() {
	if !c.authenticated || c.editor == nil {
		c.SendError("not_authenticated", "Connection not authenticated")
		return
	}

	c.editor.Connected = true
	c.editor.ConnectedAt = time.Now()
	c.editor.SessionID = c.server.session.ID

	if err := c.server.session.AddEditor(c.editor, c); err != nil {
		log.Printf("Failed to add editor to session: %v", err)
		c.SendError("join_failed", "Failed to join session")
		return
	}
	c.joined = true

	gm := c.server.session.Map()
	welcome := network.ServerMessage{
		Type: network.MsgTypeWelcome,
		Payload: network.WelcomePayload{
			ClientID:  c.editor.ID,
			Username:  c.editor.Username,
			SessionID: c.server.session.ID,
			Map: network.MapMeta{
				Width:      gm.Width,
				Height:     gm.Height,
				Wrapping:   gm.Metrics().Wrapping,
				ChunkSizeX: gm.Metrics().ChunkSizeX,
				ChunkSizeZ: gm.ChunkSizeZ,
			},
		},
	}
	c.SendMessage(&welcome)

	c.server.session.BroadcastExcept(c, &network.ServerMessage{
		Type: network.MsgTypeClientJoined,
		Payload: network.ClientJoinedPayload{
			ClientID: c.editor.ID,
			Username: c.editor.Username,
		},
	})

	log.Printf("Editor %s joined session %s", c.editor.Username, c.server.session.ID)
}

// handleLeave removes the client from the session
func (c *Connection) handleLeave() {
	if c.editor == nil || !c.joined {
		return
	}
	c.joined = false
	c.server.session.RemoveEditor(c.editor.ID)

	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypeClientLeft,
		Payload: network.ClientLeftPayload{
			ClientID: c.editor.ID,
			Username: c.editor.Username,
		},
	})
}

// handleGetCell answers a single-cell query
func (c *Connection) handleGetCell(payload json.RawMessage) {
	var req network.GetCellPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid get_cell payload")
		return
	}

	var state *network.CellState
	c.server.session.WithMapRead(func(gm *gamemap.Map) {
		if cell := gm.Cell(req.Cell.OffsetX, req.Cell.OffsetZ); cell != nil {
			s := cellState(gm, cell)
			state = &s
		}
	})
	if state == nil {
		c.SendError("unknown_cell", "Cell is outside the map")
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypeCellState,
		Payload: *state,
	})
}

// handleGetChunk answers a chunk query with all of the chunk's cells
func (c *Connection) handleGetChunk(payload json.RawMessage) {
	var req network.GetChunkPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid get_chunk payload")
		return
	}

	var states []network.CellState
	c.server.session.WithMapRead(func(gm *gamemap.Map) {
		for _, cell := range gm.CellsInChunk(req.ChunkX, req.ChunkZ) {
			states = append(states, cellState(gm, cell))
		}
	})
	if states == nil {
		c.SendError("unknown_chunk", "Chunk is outside the map")
		return
	}

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeChunkState,
		Payload: network.ChunkStatePayload{
			ChunkX: req.ChunkX,
			ChunkZ: req.ChunkZ,
			Cells:  states,
		},
	})
}

// handleSetTerrain applies a terrain edit and broadcasts it
func (c *Connection) handleSetTerrain(payload json.RawMessage) {
	if c.editor == nil || !c.editor.CanEdit() {
		c.SendError("forbidden", "Editing requires the edit permission")
		return
	}

	var req network.SetTerrainPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid set_terrain payload")
		return
	}

	terrain := gamemap.Terrain(req.Terrain)
	if !terrain.Valid() {
		c.SendError("invalid_terrain", "Unknown terrain class")
		return
	}

	applied := false
	c.server.session.WithMap(func(gm *gamemap.Map) {
		if cell := gm.Cell(req.Cell.OffsetX, req.Cell.OffsetZ); cell != nil {
			cell.Terrain = terrain
			applied = true
		}
	})
	if !applied {
		c.SendError("unknown_cell", "Cell is outside the map")
		return
	}

	c.server.session.BroadcastMessage(&network.ServerMessage{
		Type: network.MsgTypeCellUpdate,
		Payload: network.CellUpdatePayload{
			Cell:     req.Cell,
			Terrain:  terrain.String(),
			EditedBy: c.editor.Username,
		},
	})

	log.Printf("Editor %s set (%d, %d) to %s",
		c.editor.Username, req.Cell.OffsetX, req.Cell.OffsetZ, terrain)
}

// handleDistance answers a step-distance query between two cells
func (c *Connection) handleDistance(payload json.RawMessage) {
	var req network.DistancePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		c.SendError("invalid_payload", "Invalid distance payload")
		return
	}

	gm := c.server.session.Map()
	metrics := gm.Metrics()
	from := hexgrid.FromOffset(metrics, req.From.OffsetX, req.From.OffsetZ)
	to := hexgrid.FromOffset(metrics, req.To.OffsetX, req.To.OffsetZ)

	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeDistanceResult,
		Payload: network.DistanceResultPayload{
			From:     req.From,
			To:       req.To,
			Distance: from.DistanceTo(metrics, to),
		},
	})
}

// handlePing handles ping requests
func (c *Connection) handlePing() {
	c.SendMessage(&network.ServerMessage{
		Type:    network.MsgTypePong,
		Payload: map[string]interface{}{"timestamp": time.Now().Unix()},
	})
}

// cellState builds the wire form of a cell
func cellState(gm *gamemap.Map, cell *gamemap.Cell) network.CellState {
	return network.CellState{
		Cell: network.CellRef{
			OffsetX: cell.Coord.OffsetX(),
			OffsetZ: cell.Coord.OffsetZ(),
		},
		Coord:     cell.Coord.String(),
		WorldX:    cell.Coord.WorldX(),
		WorldZ:    cell.Coord.WorldZ(gm.Metrics()),
		Terrain:   cell.Terrain.String(),
		Elevation: cell.Elevation,
	}
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *network.ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal message: %v", err)
		return
	}

	select {
	case c.send <- data:
	default:
		log.Printf("Send buffer full, dropping message")
	}
}

// SendError sends an error message to the client
func (c *Connection) SendError(code, message string) {
	c.SendMessage(&network.ServerMessage{
		Type: network.MsgTypeError,
		Payload: network.ErrorPayload{
			Code:    code,
			Message: message,
		},
	})
}

// Close closes the connection. Safe to call more than once: the read
// pump and server shutdown can both reach it.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		if c.authenticated && c.editor != nil {
			c.handleLeave()
		}

		close(c.send)
		c.ws.Close()
	})
}
