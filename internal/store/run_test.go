package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/w65harness/internal/ir"
	"github.com/roach88/w65harness/internal/testutil"
)

var sampleTrace = []ir.CycleEvent{
	{Type: ir.CycleVectorRead, Address: 0xFFFC, Data: 0x00},
	{Type: ir.CycleVectorRead, Address: 0xFFFD, Data: 0x02},
	{Type: ir.CycleOpcodeRead, Address: 0x0200, Data: 0x00},
}

func sampleRun(t *testing.T, id string, jobJSON string, cycles uint32) Run {
	t.Helper()
	report := &ir.Report{
		LastPC:           testutil.Ptr(uint16(0x0200)),
		NumCycles:        cycles,
		TerminationCause: "brk",
		Cycles:           []string{"5FFFC00", "5FFFD02", "F020000"},
	}
	run, err := NewRun(id, "jobs/brk.json", []byte(jobJSON), report)
	require.NoError(t, err)
	return run
}

const brkJob = `{"init": [{"data": "base64:AA==", "base": 512}], "show_cycles": true}`

func TestNewRun_CanonicalisesJob(t *testing.T) {
	a := sampleRun(t, "a", brkJob, 8)
	b := sampleRun(t, "b", `{"show_cycles":true,"init":[{"base":512,"data":"base64:AA=="}]}`, 8)

	assert.Equal(t, a.JobJSON, b.JobJSON)
	assert.Equal(t, a.JobHash, b.JobHash)
	assert.Equal(t, `{"init":[{"base":512,"data":"base64:AA=="}],"show_cycles":true}`, a.JobJSON)
	assert.Equal(t, testutil.ReportDigest(t, a.Report), a.ReportDigest)
	assert.Equal(t, ir.HarnessVersion, a.HarnessVersion)
}

func TestNewRun_KeepsDataBytes(t *testing.T) {
	decomposed := sampleRun(t, "d", `{"init":[{"base":768,"data":"utf8:e\u0301"}]}`, 8)
	composed := sampleRun(t, "c", `{"init":[{"base":768,"data":"utf8:\u00e9"}]}`, 8)

	assert.Equal(t, "{\"init\":[{\"base\":768,\"data\":\"utf8:e\u0301\"}]}", decomposed.JobJSON)
	assert.NotEqual(t, composed.JobHash, decomposed.JobHash)

	var job ir.Job
	require.NoError(t, json.Unmarshal([]byte(decomposed.JobJSON), &job))
	data, err := ir.DecodeData(job.Init[0].Data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x65, 0xCC, 0x81}, data)
}

func TestWriteRun_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	ids := testutil.NewFixedIDGenerator("run")

	run := sampleRun(t, ids.Generate(), brkJob, 8)
	seq, err := s.WriteRun(ctx, run, sampleTrace)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	got, err := s.GetRun(ctx, "run-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Seq)
	assert.Equal(t, run.JobJSON, got.JobJSON)
	assert.Equal(t, run.ReportDigest, got.ReportDigest)
	assert.Equal(t, run.Report, got.Report)
	assert.Equal(t, testutil.ReportDigest(t, got.Report), got.ReportDigest)

	events, err := s.ReadCycles(ctx, "run-0001")
	require.NoError(t, err)
	assert.Equal(t, sampleTrace, events)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := sampleRun(t, "dup", brkJob, 8)
	first, err := s.WriteRun(ctx, run, sampleTrace)
	require.NoError(t, err)
	second, err := s.WriteRun(ctx, run, sampleTrace)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	events, err := s.ReadCycles(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, events, len(sampleTrace))
}

func TestWriteRun_NullLastPC(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := sampleRun(t, "limit", brkJob, 6)
	run.Report.LastPC = nil
	run.Report.TerminationCause = "limit"
	_, err := s.WriteRun(ctx, run, nil)
	require.NoError(t, err)

	var lastPC *int64
	require.NoError(t, s.DB().QueryRow(`SELECT last_pc FROM runs WHERE id = 'limit'`).Scan(&lastPC))
	assert.Nil(t, lastPC)

	got, err := s.GetRun(ctx, "limit")
	require.NoError(t, err)
	assert.Nil(t, got.Report.LastPC)
}

func TestGetRun_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.GetRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRuns_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	// IDs deliberately sort opposite to insertion order.
	for _, id := range []string{"c", "b", "a"} {
		_, err := s.WriteRun(ctx, sampleRun(t, id, brkJob, 8), nil)
		require.NoError(t, err)
	}

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
	assert.Equal(t, []int64{1, 2, 3}, []int64{runs[0].Seq, runs[1].Seq, runs[2].Seq})

	limited, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListRuns_EmptyStore(t *testing.T) {
	s := createTestStore(t)
	runs, err := s.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestReadCycles_FilterByType(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, sampleRun(t, "r", brkJob, 8), sampleTrace)
	require.NoError(t, err)

	opcodes, err := s.ReadCycles(ctx, "r", ir.CycleOpcodeRead)
	require.NoError(t, err)
	assert.Equal(t, sampleTrace[2:], opcodes)

	both, err := s.ReadCycles(ctx, "r", ir.CycleOpcodeRead, ir.CycleVectorRead)
	require.NoError(t, err)
	assert.Len(t, both, 3)
}

func TestRunsForJobAndReplaySet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	other := `{"init":[{"base":512,"data":"base64:TAAC"}]}`
	for _, r := range []Run{
		sampleRun(t, "r1", brkJob, 8),
		sampleRun(t, "r2", other, 11),
		sampleRun(t, "r3", brkJob, 8),
	} {
		_, err := s.WriteRun(ctx, r, nil)
		require.NoError(t, err)
	}

	brk, err := s.RunsForJob(ctx, sampleRun(t, "x", brkJob, 8).JobHash)
	require.NoError(t, err)
	assert.Len(t, brk, 2)

	latest, err := s.ReplaySet(ctx, "")
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "r2", latest[0].ID)
	assert.Equal(t, "r3", latest[1].ID)

	one, err := s.ReplaySet(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "r1", one[0].ID)

	_, err = s.ReplaySet(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStats(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.WriteRun(ctx, sampleRun(t, "r1", brkJob, 8), sampleTrace)
	require.NoError(t, err)
	limit := sampleRun(t, "r2", brkJob, 6)
	limit.Report.TerminationCause = "limit"
	_, err = s.WriteRun(ctx, limit, nil)
	require.NoError(t, err)

	st, err := s.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Runs)
	assert.Equal(t, 1, st.Jobs)
	assert.Equal(t, 3, st.Events)
	assert.Equal(t, int64(2), st.LastSeq)
	assert.Equal(t, map[string]int{"brk": 1, "limit": 1}, st.ByCause)
}

func TestUUIDv7Generator(t *testing.T) {
	var gen IDGenerator = UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
