package infra_redis_changefeed

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/humanbelnik/planpoker/core/internal/model"
)

var (
	ErrMalformed  = errors.New("malformed change envelope")
	ErrWrongTable = errors.New("change envelope for another table")
)

const channelPrefix = "planpoker:room:"

// Envelope is the wire form of one row change, shared by Redis pub/sub and
// the websocket fan-out.
type Envelope struct {
	Table string          `json:"table"`
	Op    model.ChangeOp  `json:"op"`
	Row   json.RawMessage `json:"row"`
}

// Channel names the pub/sub channel carrying table changes of one room.
func Channel(roomID, table string) string {
	return channelPrefix + roomID + ":" + table
}

func EncodeRoom(c model.RoomChange) ([]byte, error) {
	return encode(model.TableRooms, c.Op, c.Row)
}

func EncodeParticipant(c model.ParticipantChange) ([]byte, error) {
	return encode(model.TableParticipants, c.Op, c.Row)
}

func encode(table string, op model.ChangeOp, row any) ([]byte, error) {
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Table: table, Op: op, Row: raw})
}

func Decode(payload []byte) (Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(payload, &e); err != nil {
		return Envelope{}, errors.Join(ErrMalformed, err)
	}
	switch e.Op {
	case model.OpInsert, model.OpUpdate, model.OpDelete:
	default:
		return Envelope{}, fmt.Errorf("%w: unknown op %q", ErrMalformed, e.Op)
	}
	if len(e.Row) == 0 {
		return Envelope{}, fmt.Errorf("%w: missing row", ErrMalformed)
	}
	return e, nil
}

func (e Envelope) RoomChange() (model.RoomChange, error) {
	if e.Table != model.TableRooms {
		return model.RoomChange{}, fmt.Errorf("%w: %s", ErrWrongTable, e.Table)
	}
	var row model.Room
	if err := json.Unmarshal(e.Row, &row); err != nil {
		return model.RoomChange{}, errors.Join(ErrMalformed, err)
	}
	return model.RoomChange{Op: e.Op, Row: row}, nil
}

func (e Envelope) ParticipantChange() (model.ParticipantChange, error) {
	if e.Table != model.TableParticipants {
		return model.ParticipantChange{}, fmt.Errorf("%w: %s", ErrWrongTable, e.Table)
	}
	var row model.Participant
	if err := json.Unmarshal(e.Row, &row); err != nil {
		return model.ParticipantChange{}, errors.Join(ErrMalformed, err)
	}
	return model.ParticipantChange{Op: e.Op, Row: row}, nil
}
