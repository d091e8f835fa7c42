// internal/session/session_test.go
package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/scanctl/internal/metrics"
	"github.com/tamzrod/scanctl/internal/testutil/fakeport"
	"github.com/tamzrod/scanctl/internal/testutil/testlog"
	"github.com/tamzrod/scanctl/internal/trace"
	"github.com/tamzrod/scanctl/internal/uniden"
)

func newSession(t *testing.T, port *fakeport.Port) *Session {
	t.Helper()
	return New(port, Config{
		Device:  "test",
		Timeout: 50 * time.Millisecond,
		Logger:  testlog.New(t),
	})
}

func programming(t *testing.T, port *fakeport.Port) *Session {
	t.Helper()
	port.On("PRG", "PRG,OK")
	s := newSession(t, port)
	require.NoError(t, s.EnterProgrammingMode(context.Background()))
	return s
}

// ---- framing ----

func TestIssueCommand_ReturnsFields(t *testing.T) {
	port := fakeport.New().On("MDL", "MDL,BCD396XT")
	s := newSession(t, port)

	fields, err := s.IssueCommand(context.Background(), "MDL", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"BCD396XT"}, fields)
	assert.Equal(t, []string{"MDL"}, port.Commands())
}

func TestIssueCommand_AccumulatesChunkedReply(t *testing.T) {
	desc := make([]string, uniden.SystemInfoFields)
	desc[uniden.SINType] = "CNV"
	desc[uniden.SINName] = "Police"
	desc[uniden.SINForward] = "4"
	desc[uniden.SINSeqNumber] = "7"
	port := fakeport.New().On("SIN,3", "SIN,"+strings.Join(desc, ","))
	port.Chunk = 3
	s := programming(t, port)

	fields, err := s.IssueCommand(context.Background(), "SIN,3", uniden.SystemInfoFields)
	require.NoError(t, err)
	assert.Len(t, fields, uniden.SystemInfoFields)
	assert.Equal(t, "CNV", fields[0])
	assert.Equal(t, "4", fields[12])
	assert.Equal(t, "", fields[27])
}

func TestIssueCommand_TrailingSeparatorKeepsEmptyField(t *testing.T) {
	port := fakeport.New().On("BLT", "BLT,AO,RED,")
	s := programming(t, port)

	fields, err := s.IssueCommand(context.Background(), "BLT", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"AO", "RED", ""}, fields)
}

func TestIssueCommand_WrongPrefix(t *testing.T) {
	for name, reply := range map[string]string{
		"other mnemonic": "VER,1.0",
		"error reply":    "ERR",
		"glued suffix":   "MDLX,1",
		"short":          "MD",
	} {
		t.Run(name, func(t *testing.T) {
			port := fakeport.New().On("MDL", reply)
			s := newSession(t, port)

			_, err := s.IssueCommand(context.Background(), "MDL", 1)
			var fe *FramingError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, ReasonPrefix, fe.Reason)
			assert.Equal(t, "framing", Kind(err))
		})
	}
}

func TestIssueCommand_WrongLength(t *testing.T) {
	port := fakeport.New().On("GLG", "GLG,1,2,3")
	s := newSession(t, port)

	_, err := s.IssueCommand(context.Background(), "GLG", uniden.StatusFields)
	var fe *FramingError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, ReasonLength, fe.Reason)
	assert.Equal(t, uniden.StatusFields, fe.Expected)
	assert.Equal(t, 3, fe.Actual)
}

func TestIssueCommand_AnyLength(t *testing.T) {
	port := fakeport.New().On("VER", "VER,Version 1.23.45,extra")
	s := newSession(t, port)

	fields, err := s.IssueCommand(context.Background(), "VER", AnyLength)
	require.NoError(t, err)
	assert.Len(t, fields, 2)
}

func TestIssueCommand_TimeoutWhenNoTerminator(t *testing.T) {
	port := fakeport.New().OnRaw("MDL", "MDL,BCD")
	s := newSession(t, port)

	start := time.Now()
	_, err := s.IssueCommand(context.Background(), "MDL", 1)
	var te *TimeoutError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, []byte("MDL,BCD"), te.Partial)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, CodeTimeout, ErrorCode(err))
}

func TestIssueCommand_TransportErrorsSurfaceUnchanged(t *testing.T) {
	port := fakeport.New()
	port.WriteErr = io.ErrClosedPipe
	s := newSession(t, port)

	_, err := s.IssueCommand(context.Background(), "MDL", 1)
	var xe *TransportError
	require.ErrorAs(t, err, &xe)
	assert.Equal(t, "write", xe.Op)
	assert.ErrorIs(t, err, io.ErrClosedPipe)

	port.WriteErr = nil
	port.ReadErr = io.EOF
	_, err = s.IssueCommand(context.Background(), "MDL", 1)
	assert.ErrorIs(t, err, io.EOF)
}

func TestIssueCommand_ContextCancelled(t *testing.T) {
	port := fakeport.New()
	s := newSession(t, port)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.IssueCommand(ctx, "MDL", 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, port.Commands())
}

func TestIssueCommand_GatedOutsideProgrammingMode(t *testing.T) {
	port := fakeport.New().On("SCT", "SCT,5")
	s := newSession(t, port)

	_, err := s.IssueCommand(context.Background(), "SCT", 1)
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Empty(t, port.Commands(), "gated command must not reach the wire")
}

// ---- programming mode ----

func TestProgrammingMode_EnterThenExit(t *testing.T) {
	port := fakeport.New().On("PRG", "PRG,OK").On("EPG", "EPG,OK")
	s := newSession(t, port)
	ctx := context.Background()

	require.NoError(t, s.EnterProgrammingMode(ctx))
	assert.True(t, s.InProgrammingMode())
	require.NoError(t, s.ExitProgrammingMode(ctx))
	assert.False(t, s.InProgrammingMode())
	assert.Equal(t, []string{"PRG", "EPG"}, port.Commands())
}

func TestProgrammingMode_EnterTwice(t *testing.T) {
	port := fakeport.New().On("PRG", "PRG,OK")
	s := newSession(t, port)
	ctx := context.Background()

	require.NoError(t, s.EnterProgrammingMode(ctx))
	err := s.EnterProgrammingMode(ctx)
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Equal(t, 1, port.Count("PRG"), "precondition is checked locally")
}

func TestProgrammingMode_ExitWithoutEnter(t *testing.T) {
	port := fakeport.New().On("EPG", "EPG,OK")
	s := newSession(t, port)

	err := s.ExitProgrammingMode(context.Background())
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Empty(t, port.Commands())
}

func TestProgrammingMode_RejectedReply(t *testing.T) {
	port := fakeport.New().On("PRG", "PRG,NG")
	s := newSession(t, port)

	err := s.EnterProgrammingMode(context.Background())
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "NG", pe.Reply)
	assert.Contains(t, err.Error(), "enter programming mode")
	assert.False(t, s.InProgrammingMode())
}

// ---- queries ----

func TestQueries_ModeFree(t *testing.T) {
	port := fakeport.New().
		On("MDL", "MDL,BCD396XT").
		On("VER", "VER,Version 1.00.00").
		On("GLG", "GLG,,,,,,,,,,,,")
	s := newSession(t, port)
	ctx := context.Background()

	model, err := s.GetModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, "BCD396XT", model)

	ver, err := s.GetFirmwareVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Version 1.00.00", ver)

	st, err := s.GetReceptionStatus(ctx)
	require.NoError(t, err)
	assert.True(t, st.Empty())
}

// ---- trace & metrics ----

func TestSession_TracesAndCountsExchanges(t *testing.T) {
	var buf bytes.Buffer
	rec := trace.NewRecorder(&buf)
	reg := prometheus.NewRegistry()

	port := fakeport.New().On("MDL", "MDL,BCD396XT").On("VER", "XYZ")
	s := New(port, Config{
		Device:  "bench",
		Timeout: 50 * time.Millisecond,
		Logger:  testlog.New(t),
		Trace:   rec,
		Metrics: metrics.New(reg),
	})

	_, err := s.GetModel(context.Background())
	require.NoError(t, err)
	_, err = s.GetFirmwareVersion(context.Background())
	require.Error(t, err)

	events, err := trace.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, s.ID(), events[0].SessionID)
	assert.Equal(t, "bench", events[0].Device)
	assert.Equal(t, []byte("MDL,BCD396XT\r"), events[0].Response)
	assert.Equal(t, 1, events[0].Fields)
	assert.True(t, events[1].Failed())

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestErrorCode_Generic(t *testing.T) {
	assert.Equal(t, uint16(0), ErrorCode(nil))
	assert.Equal(t, uint16(1), ErrorCode(errors.New("x")))
	assert.Equal(t, CodeDecode, ErrorCode(&uniden.FieldError{Command: "GLG"}))
}

func TestIssueCommand_RejectsEmbeddedTerminator(t *testing.T) {
	port := fakeport.New().On("MDL", "MDL,BCD396XT")
	s := newSession(t, port)

	_, err := s.IssueCommand(context.Background(), "MDL\rPRG", AnyLength)
	var pe *PreconditionError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Reason, "terminator")
	assert.Empty(t, port.Commands())
}

func TestIssueCommand_CloseUnblocksPendingRead(t *testing.T) {
	port := fakeport.New()
	s := New(port, Config{Timeout: 5 * time.Second, Logger: testlog.New(t)})

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = port.Close()
	}()

	start := time.Now()
	_, err := s.IssueCommand(context.Background(), "MDL", 1)

	var xe *TransportError
	require.ErrorAs(t, err, &xe)
	assert.Equal(t, "read", xe.Op)
	assert.ErrorIs(t, err, fakeport.ErrClosed)
	assert.Equal(t, CodeTransport, ErrorCode(err))
	assert.Less(t, time.Since(start), time.Second)
}
