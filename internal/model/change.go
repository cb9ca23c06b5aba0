package model

type ChangeOp string

const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

const (
	TableRooms        = "rooms"
	TableParticipants = "participants"
)

// RoomChange is one change-feed notification for a room row. Row is always
// the full current row; for deletes it is the last known row.
type RoomChange struct {
	Op  ChangeOp `json:"op"`
	Row Room     `json:"row"`
}

type ParticipantChange struct {
	Op  ChangeOp    `json:"op"`
	Row Participant `json:"row"`
}

// Snapshot is the full state of one room as read from the store.
type Snapshot struct {
	Room         Room          `json:"room"`
	Participants []Participant `json:"participants"`
}
