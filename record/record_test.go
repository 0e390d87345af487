package record

import (
	"testing"
	"time"

	recpb "github.com/libp2p/go-libp2p-record/pb"
	"github.com/stretchr/testify/require"
)

func TestMakePutRecord(t *testing.T) {
	r := MakePutRecord("/test/key", []byte("test value"))
	require.Equal(t, "/test/key", r.Key)
	require.Equal(t, []byte("test value"), r.Value)
	require.Empty(t, r.Author)
	require.False(t, r.Timestamp.IsZero())
	require.Equal(t, time.UTC, r.Timestamp.Location())

	r = MakePutRecord("/test/key", []byte("test value"), "author")
	require.Equal(t, "author", r.Author)
}

func TestRecordEqual(t *testing.T) {
	r1 := MakePutRecord("/test/key", []byte("value"), "author1")
	r2 := MakePutRecord("/test/key", []byte("value"), "author1")
	r2.Timestamp = r1.Timestamp.Add(time.Hour)
	r3 := MakePutRecord("/test/key", []byte("value"), "author2")

	require.True(t, r1.Equal(r2))
	require.False(t, r1.Equal(r3))
	require.False(t, r1.Equal(nil))
}

func TestRecordString(t *testing.T) {
	s := MakePutRecord("/test/key", []byte("value"), "author").String()
	require.Contains(t, s, "Record")
	require.Contains(t, s, "/test/key")
	require.Contains(t, s, "author")

	var nilRec *Record
	require.Equal(t, "Record(nil)", nilRec.String())
}

func TestRecordPB(t *testing.T) {
	r := MakePutRecord("/test/key", []byte("value"))
	pbr := r.ToPB()
	require.Equal(t, []byte("/test/key"), pbr.GetKey())
	require.Equal(t, []byte("value"), pbr.GetValue())

	back, err := FromPB(pbr)
	require.NoError(t, err)
	require.True(t, r.Equal(back))
	require.True(t, r.Timestamp.Equal(back.Timestamp))

	_, err = FromPB(&recpb.Record{Key: []byte("/test/key"), TimeReceived: "yesterday"})
	require.ErrorIs(t, err, ErrInvalidRecord)
	_, err = FromPB(nil)
	require.ErrorIs(t, err, ErrInvalidRecord)

	back, err = FromPB(&recpb.Record{Key: []byte("/test/key")})
	require.NoError(t, err)
	require.True(t, back.Timestamp.IsZero())
}
