package network

import "encoding/json"

// Message types - Client → Server
const (
	MsgTypeJoin       = "join"
	MsgTypeLeave      = "leave"
	MsgTypeGetCell    = "get_cell"
	MsgTypeGetChunk   = "get_chunk"
	MsgTypeSetTerrain = "set_terrain"
	MsgTypeDistance   = "distance"
	MsgTypePing       = "ping"
)

// Message types - Server → Client
const (
	MsgTypeWelcome        = "welcome"
	MsgTypeClientJoined   = "client_joined"
	MsgTypeClientLeft     = "client_left"
	MsgTypeCellState      = "cell_state"
	MsgTypeChunkState     = "chunk_state"
	MsgTypeCellUpdate     = "cell_update"
	MsgTypeDistanceResult = "distance_result"
	MsgTypeError          = "error"
	MsgTypePong           = "pong"
)

// ClientMessage represents any message from client to server
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ServerMessage represents any message from server to client
type ServerMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// CellRef addresses a cell by its offset coordinates.
type CellRef struct {
	OffsetX int32 `json:"offset_x"`
	OffsetZ int32 `json:"offset_z"`
}

// --- Client Message Payloads ---

// GetCellPayload requests the state of one cell
type GetCellPayload struct {
	Cell CellRef `json:"cell"`
}

// GetChunkPayload requests the cells of one chunk
type GetChunkPayload struct {
	ChunkX int32 `json:"chunk_x"`
	ChunkZ int32 `json:"chunk_z"`
}

// SetTerrainPayload changes the terrain of one cell (requires the edit
// permission)
type SetTerrainPayload struct {
	Cell    CellRef `json:"cell"`
	Terrain uint8   `json:"terrain"`
}

// DistancePayload requests the step distance between two cells
type DistancePayload struct {
	From CellRef `json:"from"`
	To   CellRef `json:"to"`
}

// --- Server Message Payloads ---

// WelcomePayload is sent to a client after joining
type WelcomePayload struct {
	ClientID  string  `json:"client_id"`
	Username  string  `json:"username"`
	SessionID string  `json:"session_id"`
	Map       MapMeta `json:"map"`
}

// MapMeta describes the shared map
type MapMeta struct {
	Width      int32 `json:"width"`
	Height     int32 `json:"height"`
	Wrapping   bool  `json:"wrapping"`
	ChunkSizeX int32 `json:"chunk_size_x"`
	ChunkSizeZ int32 `json:"chunk_size_z"`
}

// ClientJoinedPayload notifies clients when an editor joins
type ClientJoinedPayload struct {
	ClientID string `json:"client_id"`
	Username string `json:"username"`
}

// ClientLeftPayload notifies clients when an editor leaves
type ClientLeftPayload struct {
	ClientID string `json:"client_id"`
	Username string `json:"username"`
}

// CellState describes one cell
type CellState struct {
	Cell      CellRef `json:"cell"`
	Coord     string  `json:"coord"` // "(X, Y, Z)" cube form
	WorldX    float64 `json:"world_x"`
	WorldZ    float64 `json:"world_z"`
	Terrain   string  `json:"terrain"`
	Elevation uint8   `json:"elevation"`
}

// ChunkStatePayload carries the cells of one chunk
type ChunkStatePayload struct {
	ChunkX int32       `json:"chunk_x"`
	ChunkZ int32       `json:"chunk_z"`
	Cells  []CellState `json:"cells"`
}

// CellUpdatePayload broadcasts a terrain edit to all clients
type CellUpdatePayload struct {
	Cell     CellRef `json:"cell"`
	Terrain  string  `json:"terrain"`
	EditedBy string  `json:"edited_by"`
}

// DistanceResultPayload answers a distance query
type DistanceResultPayload struct {
	From     CellRef `json:"from"`
	To       CellRef `json:"to"`
	Distance int     `json:"distance"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
