package telemetry

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// CaptureWriter streams RenderSnapshots to two sibling sinks for offline
// inspection, grounded on the broker's replay.Writer dual-stream layout
// (a snappy JSONL event log plus a zstd binary frame log), trimmed to a
// one-way diagnostic capture: no cadence batching, no manifest, no header,
// since this module has no replayer to read either file back.
//
//   - <path>            a snappy-compressed, newline-delimited JSON log of
//     every budgeted telemetry frame, for grepping/jq-ing by hand.
//   - <path minus its final extension>.trace.zst  a zstd-compressed,
//     length-prefixed binary log of
//     chassis position+forward samples, for tools that want a compact
//     trajectory trace without re-parsing JSON.
type CaptureWriter struct {
	mu sync.Mutex
	now func() time.Time

	eventFile   *os.File
	eventStream *snappy.Writer

	traceFile   *os.File
	traceStream *zstd.Encoder
}

type captureRecord struct {
	SequenceID uint64          `json:"seq"`
	CapturedAt string          `json:"captured_at"`
	Frame      json.RawMessage `json:"frame"`
}

// NewCaptureWriter creates (or truncates) path and its sibling trace file,
// opening a snappy-compressed JSONL writer over the former and a
// zstd-compressed binary writer over the latter.
func NewCaptureWriter(path string, clock func() time.Time) (*CaptureWriter, error) {
	if path == "" {
		return nil, fmt.Errorf("capture path must be provided")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = time.Now
	}

	eventFile, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	tracePath := strings.TrimSuffix(path, filepath.Ext(path)) + ".trace.zst"
	traceFile, err := os.Create(tracePath)
	if err != nil {
		eventFile.Close()
		return nil, err
	}
	traceStream, err := zstd.NewWriter(traceFile)
	if err != nil {
		eventFile.Close()
		traceFile.Close()
		return nil, err
	}

	return &CaptureWriter{
		now:         clock,
		eventFile:   eventFile,
		eventStream: snappy.NewBufferedWriter(eventFile),
		traceFile:   traceFile,
		traceStream: traceStream,
	}, nil
}

// Append writes one budgeted frame to the JSONL capture stream.
func (c *CaptureWriter) Append(seq uint64, frame []byte) error {
	if c == nil {
		return fmt.Errorf("capture writer not initialised")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	record := captureRecord{
		SequenceID: seq,
		CapturedAt: c.now().UTC().Format(time.RFC3339Nano),
		Frame:      json.RawMessage(frame),
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if _, err := c.eventStream.Write(line); err != nil {
		return err
	}
	if _, err := c.eventStream.Write([]byte("\n")); err != nil {
		return err
	}
	return c.eventStream.Flush()
}

// AppendTrace writes one length-prefixed binary sample (tick, timestamp,
// chassis position, chassis forward) to the compact zstd trace stream.
// Grounded on replay.Writer.flushLocked's length-prefixed frame layout.
func (c *CaptureWriter) AppendTrace(tick uint64, timestampMs int64, position, forward [3]float64) error {
	if c == nil {
		return fmt.Errorf("capture writer not initialised")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	buf := make([]byte, 8+8+6*8)
	binary.LittleEndian.PutUint64(buf[0:8], tick)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(timestampMs))
	offset := 16
	for _, v := range position {
		binary.LittleEndian.PutUint64(buf[offset:offset+8], math.Float64bits(v))
		offset += 8
	}
	for _, v := range forward {
		binary.LittleEndian.PutUint64(buf[offset:offset+8], math.Float64bits(v))
		offset += 8
	}
	_, err := c.traceStream.Write(buf)
	return err
}

// Close flushes and releases both underlying file handles.
func (c *CaptureWriter) Close() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	if err := c.eventStream.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := c.eventStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := c.eventFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := c.traceStream.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := c.traceFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
