package pb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestOptionalFieldPresence(t *testing.T) {
	empty := ""
	in := &UpdateEventRequest{Id: "ev-1", Title: &empty}

	data, err := Codec{}.Marshal(in)
	require.NoError(t, err)

	out := &UpdateEventRequest{}
	require.NoError(t, Codec{}.Unmarshal(data, out))
	assert.Equal(t, "ev-1", out.Id)
	require.NotNil(t, out.Title, "explicit empty title must survive")
	assert.Equal(t, "", *out.Title)
	assert.Nil(t, out.Status)
	assert.Nil(t, out.StartTime)
}

func TestUnknownFieldsSkipped(t *testing.T) {
	var data []byte
	data = protowire.AppendTag(data, 99, protowire.VarintType)
	data = protowire.AppendVarint(data, 7)
	data = protowire.AppendTag(data, 1, protowire.BytesType)
	data = protowire.AppendString(data, "req-1")
	data = protowire.AppendTag(data, 42, protowire.BytesType)
	data = protowire.AppendString(data, "ignored")
	data = protowire.AppendTag(data, 2, protowire.VarintType)
	data = protowire.AppendVarint(data, 1)

	out := &RespondToSwapRequestRequest{}
	require.NoError(t, out.unmarshal(data))
	assert.Equal(t, "req-1", out.RequestId)
	assert.True(t, out.Accept)
}

func TestTruncatedInput(t *testing.T) {
	data := protowire.AppendTag(nil, 1, protowire.BytesType)
	data = protowire.AppendVarint(data, 10) // claims 10 bytes, has none

	err := (&DeleteEventRequest{}).unmarshal(data)
	assert.Error(t, err)
}

func TestNestedMessages(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	in := &ListSwapRequestsResponse{
		Incoming: []*SwapRequest{{Id: "a", Status: "PENDING", MySlotStart: timestamppb.New(start)}},
		Outgoing: []*SwapRequest{{Id: "b"}, {Id: "c", RequesterName: "alice"}},
	}
	data, err := Codec{}.Marshal(in)
	require.NoError(t, err)

	out := &ListSwapRequestsResponse{}
	require.NoError(t, Codec{}.Unmarshal(data, out))
	require.Len(t, out.Incoming, 1)
	require.Len(t, out.Outgoing, 2)
	assert.Equal(t, "PENDING", out.Incoming[0].Status)
	assert.True(t, out.Incoming[0].MySlotStart.AsTime().Equal(start))
	assert.Equal(t, "alice", out.Outgoing[1].RequesterName)
}

func TestCodecRejectsForeignTypes(t *testing.T) {
	_, err := Codec{}.Marshal("nope")
	assert.Error(t, err)
	assert.Error(t, Codec{}.Unmarshal(nil, new(int)))
}
